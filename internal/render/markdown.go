package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gomonte/domain/core"
	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
)

// MarkdownReport renders a complete run as a self-contained Markdown
// document: one section per artifact, histograms as fenced code blocks, and
// the manifest with its fingerprint at the end. Artifact order is preserved.
func MarkdownReport(manifest montecarlo.RunManifest, artifacts []core.Artifact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Monte Carlo lab run %s\n\n", manifest.RunID)
	fmt.Fprintf(&b, "Seed %d, %d experiments, %d ms.\n\n",
		manifest.Seed, len(manifest.Experiments), manifest.RuntimeMs)

	for _, a := range artifacts {
		switch p := a.Payload.(type) {
		case montecarlo.ConvergencePath:
			markdownConvergence(&b, p)
		case montecarlo.SamplingDistribution:
			markdownSampling(&b, p)
		case montecarlo.NormalityCheck:
			markdownNormality(&b, p)
		case montecarlo.IntegralEstimate:
			markdownIntegral(&b, p)
		case montecarlo.ErrorScaling:
			markdownScaling(&b, p)
		}
	}

	fmt.Fprintf(&b, "## Reproducibility\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Run | `%s` |\n", manifest.RunID)
	fmt.Fprintf(&b, "| Seed | `%d` |\n", manifest.Seed)
	fmt.Fprintf(&b, "| Fingerprint | `%s` |\n", manifest.Fingerprint)
	fmt.Fprintf(&b, "\nRe-running with the same seed reproduces this fingerprint exactly.\n")
	return b.String()
}

func markdownConvergence(b *strings.Builder, p montecarlo.ConvergencePath) {
	fmt.Fprintf(b, "## Law of large numbers — %s\n\n", p.Spec.Population)
	fmt.Fprintf(b, "Population mean %.6g.\n\n", p.TrueMean)
	fmt.Fprintf(b, "| Draws | Running mean | Abs error |\n|---:|---:|---:|\n")
	for _, pt := range p.Points {
		fmt.Fprintf(b, "| %d | %.6g | %.3g |\n", pt.N, pt.RunningMean, pt.AbsErr)
	}
	fmt.Fprintf(b, "\nFinal error after %d draws: **%.3g**.\n\n", p.Spec.Draws, p.FinalAbsErr)
}

func markdownSampling(b *strings.Builder, p montecarlo.SamplingDistribution) {
	fmt.Fprintf(b, "## Sampling distribution — %s, n=%d, %d replicates\n\n",
		p.Spec.Population, p.Spec.SampleSize, p.Spec.Replicates)
	fmt.Fprintf(b, "| | |\n|---|---:|\n")
	fmt.Fprintf(b, "| Mean of means | %.6g |\n", p.MeanOfMeans)
	fmt.Fprintf(b, "| Population mean | %.6g |\n", p.Spec.Population.Mean())
	fmt.Fprintf(b, "| Observed std error | %.6g |\n", p.StdError)
	fmt.Fprintf(b, "| Predicted sigma/sqrt(n) | %.6g |\n\n", p.PredictedStdError)
	fmt.Fprintf(b, "```\n%s```\n\n", asciiHistogram(p.Histogram, DefaultBarWidth))
}

func markdownNormality(b *strings.Builder, p montecarlo.NormalityCheck) {
	verdict := "**not normal**"
	if p.Normal {
		verdict = "consistent with normal"
	}
	fmt.Fprintf(b, "Normality (%s): statistic %.4g, p-value %.4g — %s.\n\n",
		p.Method, p.Statistic, p.PValue, verdict)
}

func markdownIntegral(b *strings.Builder, p montecarlo.IntegralEstimate) {
	in := p.Spec.Integrand
	fmt.Fprintf(b, "## Integral — %s on [%g, %g]\n\n", in.Name, in.Lower, in.Upper)
	fmt.Fprintf(b, "Estimate **%.8g ± %.3g** (95%%) from %d samples.\n",
		p.Estimate, p.HalfWidth95, p.Spec.Samples)
	if !math.IsNaN(p.Truth) {
		fmt.Fprintf(b, "Analytic value %.8g, absolute error %.3g.\n", p.Truth, p.AbsErr)
	}
	fmt.Fprintf(b, "\n")
}

func markdownScaling(b *strings.Builder, p montecarlo.ErrorScaling) {
	fmt.Fprintf(b, "## Error scaling — %s, %d trials per size\n\n",
		p.Spec.Integrand.Name, p.Spec.Trials)
	fmt.Fprintf(b, "| Samples | RMS error |\n|---:|---:|\n")
	for _, pt := range p.Points {
		fmt.Fprintf(b, "| %d | %.5g |\n", pt.N, pt.RMSErr)
	}
	fmt.Fprintf(b, "\nFitted log-log slope **%.4f** (theory −0.5, R²=%.4f).\n\n", p.Slope, p.R2)
}

// asciiHistogram renders the plain-text histogram used inside fenced blocks.
func asciiHistogram(h sample.Histogram, barWidth int) string {
	var b strings.Builder
	maxCount := h.MaxCount()
	if maxCount == 0 {
		return "(empty histogram)\n"
	}
	for i, c := range h.Counts {
		width := int(math.Round(float64(c) / float64(maxCount) * float64(barWidth)))
		if c > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "[%12.5g, %12.5g)  %6d %s\n",
			h.Edges[i], h.Edges[i+1], c, strings.Repeat("#", width))
	}
	return b.String()
}

// HTMLReport converts a Markdown report into a standalone HTML page.
func HTMLReport(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: "Monte Carlo lab report",
	})
	return markdown.Render(doc, renderer)
}
