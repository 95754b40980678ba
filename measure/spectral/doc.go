// Package spectral computes time-domain and FFT-based quality metrics from
// captured waveforms: RMS, peak-to-peak, THD, harmonic tables, SNR, and
// noise floor.
//
// All functions are pure and fail soft: a waveform that is too short or
// degenerate yields NaN results, never an error or panic. This keeps a
// sweep loop free to treat every capture uniformly.
//
// The stimulus frequency and the FFT bin grid are independent by
// construction, so fundamental and harmonic bins are located by nearest-bin
// match rather than requiring exact frequency coincidence.
package spectral
