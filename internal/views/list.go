package views

import "wvtrace/internal/store"

// FlatList projects the active run's calls in stored order, narrowed to the
// focused function when one is set. The filter is applied here once; status
// markers compare against the selection only.
func FlatList(st *store.Store) []ListItem {
	records := st.ActiveRecords()
	focus := st.FocusedFunction()
	items := make([]ListItem, 0, len(records))
	for i := range records {
		rec := &records[i]
		if focus != "" && rec.Function != focus {
			continue
		}
		items = append(items, ListItem{Call: *rec, Status: callStatus(rec, st.SelectedCall())})
	}
	return items
}

// SourceFiles lists the distinct source files referenced by the active
// run's records, in first-seen order. Only these files are offered by the
// file picker.
func SourceFiles(st *store.Store) []string {
	seen := make(map[string]bool)
	var files []string
	for _, rec := range st.ActiveRecords() {
		if rec.SourceFile == "" || seen[rec.SourceFile] {
			continue
		}
		seen[rec.SourceFile] = true
		files = append(files, rec.SourceFile)
	}
	return files
}
