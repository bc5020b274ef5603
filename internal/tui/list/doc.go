// Package listview provides a scrolling, checkable choice list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, so long choice lists stay cheap to
// draw. The cursor moves with up/down, j/k, pgup/pgdn and home/end; space toggles the
// item under the cursor.
package listview
