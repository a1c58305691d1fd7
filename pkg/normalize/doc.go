// Package normalize turns a sequence of row insertions and deletions into
// the form batch-updating list views expect.
//
// Collections announce changes one at a time, each in the index space left
// by the previous change. Views that animate a batch of changes instead want
// every delete expressed against the rows as they were before the batch and
// every add against the rows as they are after it, and they want rows that
// were added and deleted within the batch left out entirely. Normalize does
// that conversion; Recorder collects the updates from a collection between
// frames.
package normalize
