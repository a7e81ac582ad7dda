// Package imaging handles loading, preprocessing, and saving screenshots.
//
// Images are preprocessed BEFORE annotation: smart crop (percentage
// coordinates) followed by an aspect-preserving resize to the target width.
// Annotating first and scaling later would distort callout circles and
// arrowheads, so the pipeline always draws on the final-size image.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Preprocessing and saving are
// stateless and can run concurrently on different images.
//
// # Formats
//
// PNG, JPEG, and GIF decode through the standard library. WMF/EMF vector
// files cannot be decoded; FindVectorFiles reports them up front so the
// caller can warn about needed conversion instead of failing mid-batch.
package imaging
