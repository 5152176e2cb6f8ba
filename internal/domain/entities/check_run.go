package entities

// CheckRun is a check run attached to a commit.
type CheckRun struct {
	ID      int64
	Name    string
	HTMLURL string
}

// CheckRunInput carries the fields written when creating or updating a check run.
type CheckRunInput struct {
	Name       string
	HeadSHA    string
	Conclusion string
	Output     ChecksOutput
}

// Comment is an issue comment on the pull request.
type Comment struct {
	ID   int64
	Body string
}
