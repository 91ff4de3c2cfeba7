// Package ui is the terminal front-end for Texter.
//
// It is a Bubble Tea program: a textarea for the active buffer, a tab
// bar for open documents, a status line, and modal prompts for paths
// and confirmations. The package is view-layer glue only; every rule
// about documents, snapshots, and recovery lives behind the editor
// service it drives.
//
// The recovery prompt is the one startup-ordering constraint: when the
// scan found orphans the model starts in the prompt mode and no buffer
// is editable until the user answers it.
package ui
