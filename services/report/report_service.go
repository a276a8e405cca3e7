package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/secopshq/cyberark-policy-retriever/models"
	cyberarkmodels "github.com/secopshq/cyberark-policy-retriever/providers/cyberark/cyberark_models"
)

const (
	bannerWidth = 60
	totalSteps  = 4
)

// ReportService writes the operator-facing run output. Formatting only; it
// never fails the run. Diagnostic logging goes to the logger, not here, so
// the report stays clean when stdout is captured by a scheduler.
type ReportService struct {
	out io.Writer
}

func NewReportService(out io.Writer) *ReportService {
	return &ReportService{out: out}
}

func (r *ReportService) banner() string {
	return strings.Repeat("=", bannerWidth)
}

// Header prints the startup banner.
func (r *ReportService) Header() {
	fmt.Fprintln(r.out, r.banner())
	fmt.Fprintln(r.out, "CyberArk SCA & SIA Policy Retriever (AWS Secrets Manager)")
	fmt.Fprintln(r.out, r.banner())
}

// Step announces a pipeline step. The first step separates itself from the
// banner with a blank line.
func (r *ReportService) Step(step int, label string) {
	if step == 1 {
		fmt.Fprintln(r.out)
	}
	fmt.Fprintf(r.out, "[%d/%d] %s\n", step, totalSteps, label)
}

// StepDone confirms the step announced last.
func (r *ReportService) StepDone(label string) {
	fmt.Fprintf(r.out, "      ✓ %s\n", label)
}

// SCASection prints every Secure Cloud Access policy in display order.
func (r *ReportService) SCASection(policies *cyberarkmodels.SCAPolicyList) {
	fmt.Fprintln(r.out, "\n"+r.banner())
	fmt.Fprintln(r.out, "SCA POLICIES (sca.cyberark.cloud)")
	fmt.Fprintln(r.out, r.banner())

	if policies == nil {
		return
	}
	for _, policy := range policies.Hits {
		fmt.Fprintf(r.out, "\n  Name:        %s\n", policy.Name)
		fmt.Fprintf(r.out, "  Description: %s\n", policy.Description)
		fmt.Fprintf(r.out, "  Status:      %s\n", policy.StatusLabel())
		fmt.Fprintf(r.out, "  Policy ID:   %s\n", policy.PolicyID)
	}
}

// SIASection prints every Secure Infrastructure Access policy in display
// order.
func (r *ReportService) SIASection(policies *cyberarkmodels.SIAPolicyList) {
	fmt.Fprintln(r.out, "\n"+r.banner())
	fmt.Fprintln(r.out, "SIA POLICIES (uap.cyberark.cloud)")
	fmt.Fprintln(r.out, r.banner())

	if policies == nil {
		return
	}
	for _, policy := range policies.Results {
		metadata := policy.Metadata
		fmt.Fprintf(r.out, "\n  Name:        %s\n", metadata.Name)
		fmt.Fprintf(r.out, "  Description: %s\n", metadata.Description)
		fmt.Fprintf(r.out, "  Status:      %s\n", metadata.Status.Status)
		fmt.Fprintf(r.out, "  Policy ID:   %s\n", metadata.PolicyID)
	}
}

// Summary prints the combined policy count banner.
func (r *ReportService) Summary(summary *models.RetrievalSummary) {
	fmt.Fprintln(r.out, "\n"+r.banner())
	fmt.Fprintln(r.out, summary.String())
	fmt.Fprintln(r.out, r.banner())
}

// Failure surfaces a terminal error to the operator.
func (r *ReportService) Failure(message string) {
	fmt.Fprintf(r.out, "\n[ERROR] %s\n", message)
}

// ConfigurationHelp follows a Failure caused by missing configuration.
func (r *ReportService) ConfigurationHelp() {
	fmt.Fprintln(r.out, "Set AWS_SECRET_NAME in your .env file or environment.")
	fmt.Fprintln(r.out, "See .env.example for reference.")
}
