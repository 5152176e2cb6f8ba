package entities

// DiffResult is the textual difference between the base and current
// dependency trees of one project configuration.
type DiffResult struct {
	Project       string
	Configuration string
	Result        string
}

// ProjectDiff groups the results of a single project.
type ProjectDiff struct {
	Project string
	Results []DiffResult
}

// GroupByProject groups results by project. Projects keep their first-seen
// order and results keep their relative order inside each project.
func GroupByProject(results []DiffResult) []ProjectDiff {
	var groups []ProjectDiff
	index := make(map[string]int)
	for _, result := range results {
		i, ok := index[result.Project]
		if !ok {
			i = len(groups)
			index[result.Project] = i
			groups = append(groups, ProjectDiff{Project: result.Project})
		}
		groups[i].Results = append(groups[i].Results, result)
	}
	return groups
}
