// Package measure computes rendered heights for blocks ahead of pagination.
//
// The [Measurer] walks an ordered block sequence and assigns each block its
// height in points, given a fixed page content width. Text heights come from
// greedy word wrapping against a [FontMetrics] provider; table rows are
// measured cell-by-cell with equal-width columns; image heights are derived
// from natural dimensions supplied by an [ImageSizer].
//
// # Providers
//
// [FaceMetrics] adapts any golang.org/x/image/font Face as a metrics
// provider; [DefaultMetrics] wraps the basicfont face for metric-stable
// measurement without font files. [DecodeSizer] probes image dimensions via
// image.DecodeConfig with PNG, JPEG, GIF, WebP, TIFF and BMP support;
// [StaticSizer] serves pre-known dimensions.
//
// # Degradation
//
// Measurement never aborts a run over a single bad input. An unmeasurable
// text run falls back to a conservative width estimate, and an image with
// unavailable dimensions falls back to the configured fallback height; both
// conditions surface as warnings.
//
// # Concurrency
//
// Blocks have no measurement dependencies on one another, so MeasureAll may
// fan out across workers when Config.Parallelism exceeds one. Results are
// deterministic: each worker writes only its own block, and warnings are
// collected back in input order. Providers must be safe for concurrent use
// when parallelism is enabled.
package measure
