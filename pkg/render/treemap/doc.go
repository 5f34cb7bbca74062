// Package treemap is the root of the zoomable treemap renderer. The work is
// done in its subpackages: layout tiles, scale projects, zoom navigates,
// reconcile animates, styles paints and sink serializes.
package treemap
