// The atlas subpackage packs the glyphs of a font into fixed-grid
// bitmap pages and derives the metrics a bitmap-font renderer needs
// to lay them out again.
//
// A generation run goes through these steps:
//  - Resolve the codepoints and apply the preset filter.
//  - Clamp the tunables (see [ClampTunables]()).
//  - Size a uniform frame from the estimated glyph bounds
//    ([ComputeGlobalBounds](), [FrameSize]()).
//  - Choose the grid shape and split the codepoints into page
//    batches ([Grid](), [Batches]()).
//  - Render and composite every batch into its own [Page].
//  - Derive the final [FontMetrics].
//
// [Generate]() runs these steps once. [SafeGenerate]() validates the
// configuration first and retries once with reset offsets if the run
// fails unexpectedly, which is what most callers want.
package atlas
