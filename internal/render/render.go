// Package render turns lab artifacts into terminal output and shareable
// Markdown / HTML reports. Terminal rendering is plain text with optional
// color when stdout is a TTY; the inline histogram is a horizontal bar
// chart so results read the same over ssh as in a local shell.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
	"gomonte/internal/describe"
)

// DefaultBarWidth is the widest histogram bar in character cells.
const DefaultBarWidth = 50

// Renderer writes artifacts to a single destination with a fixed bar width.
type Renderer struct {
	w        io.Writer
	barWidth int
	styled   bool
}

// New builds a Renderer for w. Color is enabled only when w is a terminal.
func New(w io.Writer, barWidth int) *Renderer {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	return &Renderer{w: w, barWidth: barWidth, styled: styledWriter(w)}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) title(text string) {
	r.printf("%s\n", r.style(titleStyle, text))
}

// WriteConvergence prints the running-mean path against the population mean.
func (r *Renderer) WriteConvergence(path montecarlo.ConvergencePath) {
	r.title(fmt.Sprintf("Law of large numbers — %s", path.Spec.Population))
	r.printf("  population mean: %.6g\n", path.TrueMean)
	r.printf("  %s\n", r.style(headerStyle, fmt.Sprintf("%10s  %14s  %14s", "draws", "running mean", "abs error")))
	for _, pt := range path.Points {
		r.printf("  %10d  %14.6g  %14.3g\n", pt.N, pt.RunningMean, pt.AbsErr)
	}
	r.printf("  final error after %d draws: %s\n\n",
		path.Spec.Draws, r.style(barStyle, fmt.Sprintf("%.3g", path.FinalAbsErr)))
}

// WriteSamplingDistribution prints the replicate-mean summary and histogram.
func (r *Renderer) WriteSamplingDistribution(dist montecarlo.SamplingDistribution) {
	r.title(fmt.Sprintf("Sampling distribution of the mean — %s, n=%d, %d replicates",
		dist.Spec.Population, dist.Spec.SampleSize, dist.Spec.Replicates))
	r.printf("  mean of means:      %.6g  (population mean %.6g)\n",
		dist.MeanOfMeans, dist.Spec.Population.Mean())
	r.printf("  observed std error: %.6g\n", dist.StdError)
	r.printf("  predicted sigma/sqrt(n): %.6g\n", dist.PredictedStdError)
	r.WriteHistogram(dist.Histogram)
	r.printf("\n")
}

// WriteHistogram draws a horizontal bar chart, one row per bin.
func (r *Renderer) WriteHistogram(h sample.Histogram) {
	maxCount := h.MaxCount()
	if maxCount == 0 {
		r.printf("  (empty histogram)\n")
		return
	}
	for i, c := range h.Counts {
		width := int(math.Round(float64(c) / float64(maxCount) * float64(r.barWidth)))
		if c > 0 && width == 0 {
			width = 1
		}
		bar := strings.Repeat("█", width)
		r.printf("  [%12.5g, %12.5g)  %6d %s\n",
			h.Edges[i], h.Edges[i+1], c, r.style(barStyle, bar))
	}
}

// WriteNormality prints the normality verdict for a labelled sample.
func (r *Renderer) WriteNormality(label string, check montecarlo.NormalityCheck) {
	verdict := r.style(failStyle, "NOT NORMAL")
	if check.Normal {
		verdict = r.style(passStyle, "consistent with normal")
	}
	r.title(fmt.Sprintf("Normality check — %s", label))
	r.printf("  method: %s\n", check.Method)
	r.printf("  statistic %.4g, p-value %.4g → %s\n\n", check.Statistic, check.PValue, verdict)
}

// WriteIntegral prints a Monte Carlo estimate with its error band.
func (r *Renderer) WriteIntegral(est montecarlo.IntegralEstimate) {
	in := est.Spec.Integrand
	r.title(fmt.Sprintf("Monte Carlo integral — %s on [%g, %g]", in.Name, in.Lower, in.Upper))
	r.printf("  samples:   %d\n", est.Spec.Samples)
	r.printf("  estimate:  %.8g ± %.3g (95%%)\n", est.Estimate, est.HalfWidth95)
	if !math.IsNaN(est.Truth) {
		r.printf("  truth:     %.8g  (abs error %.3g)\n", est.Truth, est.AbsErr)
	} else {
		r.printf("  truth:     %s\n", r.style(mutedStyle, "unknown"))
	}
	r.printf("  std error: %.3g\n\n", est.StdError)
}

// WriteScaling prints RMS error per sample size and the fitted log-log slope.
func (r *Renderer) WriteScaling(scaling montecarlo.ErrorScaling) {
	r.title(fmt.Sprintf("Error scaling — %s, %d trials per size",
		scaling.Spec.Integrand.Name, scaling.Spec.Trials))
	r.printf("  %s\n", r.style(headerStyle, fmt.Sprintf("%10s  %14s", "samples", "RMS error")))
	for _, pt := range scaling.Points {
		r.printf("  %10d  %14.5g\n", pt.N, pt.RMSErr)
	}
	r.printf("  fitted slope: %s  (theory: -0.5, R²=%.4f)\n\n",
		r.style(barStyle, fmt.Sprintf("%.4f", scaling.Slope)), scaling.R2)
}

// WriteDescription prints the descriptive profile of one data column.
func (r *Renderer) WriteDescription(name string, d describe.Description) {
	r.title(fmt.Sprintf("Column — %s", name))
	s := d.Summary
	r.printf("  n=%d  mean=%.6g  std=%.6g  min=%.6g  median=%.6g  max=%.6g\n",
		s.N, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
	r.printf("  skewness %.4g, kurtosis %.4g\n", d.Skewness, d.Kurtosis)
	if d.MissingRatio > 0 {
		r.printf("  missing:  %.1f%%\n", d.MissingRatio*100)
	}
	if d.Outliers > 0 {
		r.printf("  outliers (1.5·IQR): %d\n", d.Outliers)
	}
	verdict := r.style(failStyle, "NOT NORMAL")
	if d.Normality.Normal {
		verdict = r.style(passStyle, "consistent with normal")
	}
	r.printf("  normality: %s (%s, p=%.4g)\n\n", verdict, d.Normality.Method, d.Normality.PValue)
}

// WriteManifest prints the run manifest and its reproducibility fingerprint.
func (r *Renderer) WriteManifest(m montecarlo.RunManifest) {
	r.title(fmt.Sprintf("Run %s", m.RunID))
	r.printf("  seed:        %d\n", m.Seed)
	r.printf("  experiments: %d\n", len(m.Experiments))
	r.printf("  runtime:     %d ms\n", m.RuntimeMs)
	kinds := make([]string, 0, len(m.ArtifactCounts))
	for k := range m.ArtifactCounts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		r.printf("  %-24s %d\n", k, m.ArtifactCounts[k])
	}
	r.printf("  fingerprint: %s\n\n", r.style(mutedStyle, string(m.Fingerprint)))
}
