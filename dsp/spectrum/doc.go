// Package spectrum turns a sampled, windowed time series into a normalised
// one-sided magnitude spectrum.
//
// The FFT itself is delegated to a pluggable Backend (algo-fft, gonum or
// go-dsp). Magnitudes are scaled by 1/fft_length and by the inverse of the
// window's coherent gain so that a full-scale tone reads the same regardless
// of window kind.
package spectrum
