// Package metrics computes per-file quality descriptors for the two capture
// modalities.
//
// Audio files (wav, mp3, flac) decode to mono float64 samples and yield RMS
// (linear and dBFS), peak, crest factor, zero-crossing rate, duration, and
// sample rate. Images (jpeg, png, gif, bmp, tiff, webp) decode to grayscale
// and yield Laplacian blur variance, mean brightness, and contrast.
//
// Every extraction call is self-contained: it opens its own handle, shares no
// state, and returns either a complete record or an error. Callers may fan
// calls out across any number of goroutines.
package metrics
