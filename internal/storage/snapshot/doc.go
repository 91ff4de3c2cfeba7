// Package snapshot manages autosave snapshot files for Texter.
//
// Each open document owns one snapshot slot on disk, keyed by its
// autosave ID:
//
//	<prefix><autosave_id>.txt            raw UTF-8 buffer text
//	<prefix><autosave_id>.txt.meta.json  {file_path, timestamp, title, encoding}
//
// A later autosave cycle overwrites the slot, never appends. Writes
// go through a temp file and a rename so that killing the process
// mid-write never leaves a half-written snapshot behind. A pair left
// on disk with no running editor is an orphan: evidence of an unclean
// shutdown, and the raw material for startup recovery.
package snapshot
