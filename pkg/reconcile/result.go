package reconcile

// Status is the outcome of reconciling one entry
type Status int

const (
	// Failed is the status of the empty Result returned with an error
	Failed Status = iota
	// Performed means the filesystem was changed
	Performed
	// Skipped means nothing was changed and nothing went wrong
	Skipped
)

func (s Status) String() string {
	switch s {
	case Performed:
		return "performed"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// SkipReason says why an entry was skipped
type SkipReason int

const (
	// NotSkipped is the reason carried by performed results
	NotSkipped SkipReason = iota
	// SourceMissing means the source path does not exist
	SourceMissing
	// Declined means the user refused to overwrite a destination
	Declined
	// DryRun means the change was only reported
	DryRun
	// NothingToDelete means a delete found no destination
	NothingToDelete
)

var skipReasonNames = map[SkipReason]string{
	NotSkipped:      "",
	SourceMissing:   "source missing",
	Declined:        "declined",
	DryRun:          "dry run",
	NothingToDelete: "nothing to delete",
}

func (r SkipReason) String() string {
	return skipReasonNames[r]
}

// Result describes what happened to one manifest entry
type Result struct {
	Status Status
	Reason SkipReason
	// Source is the resolved source path
	Source string
	// Dest is the full symlink path, empty if the source was missing
	Dest string
}

func performed(source, dest string) Result {
	return Result{Status: Performed, Source: source, Dest: dest}
}

func skipped(reason SkipReason, source, dest string) Result {
	return Result{Status: Skipped, Reason: reason, Source: source, Dest: dest}
}
