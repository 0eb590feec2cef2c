package runlog

// Run ids are log file stems, conventionally <YYYYMMDD>_<HHMMSS>[_suffix].

// Label renders a run id as a human-readable timestamp when the stem
// follows the date-encoded naming scheme; any other stem is shown verbatim.
func Label(runID string) string {
	if !hasTimestampStem(runID) {
		return runID
	}
	date, clock := runID[:8], runID[9:15]
	return date[:4] + "-" + date[4:6] + "-" + date[6:8] + " " +
		clock[:2] + ":" + clock[2:4] + ":" + clock[4:6]
}

// hasTimestampStem reports whether the id starts with 8 digits, an
// underscore and 6 digits. A trailing suffix after that is allowed.
func hasTimestampStem(runID string) bool {
	if len(runID) < 15 || runID[8] != '_' {
		return false
	}
	for _, i := range []int{0, 1, 2, 3, 4, 5, 6, 7, 9, 10, 11, 12, 13, 14} {
		if runID[i] < '0' || runID[i] > '9' {
			return false
		}
	}
	return true
}
