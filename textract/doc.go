// Package textract parses raw document-analysis responses into the
// blackout data model.
//
// The analysis backend stores its output as a JSON block list: PAGE,
// LINE, and WORD blocks for raw text, KEY_VALUE_SET blocks for form
// fields, and TABLE/CELL blocks for grids. Blocks reference each other
// through CHILD and VALUE relationships; this package resolves those
// references and produces flat per-page [model.Line], [model.KeyValuePair],
// and [model.Table] slices.
//
// A paginated job result may be stored as a JSON array of response
// objects. [Parse] accepts either form and concatenates the block lists.
package textract
