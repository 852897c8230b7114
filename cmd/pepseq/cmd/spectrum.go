package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/PepSeq/pkg/core"
)

var (
	linearOnly bool
	showItems  bool
)

func init() {
	spectrumCmd.Flags().BoolVar(&linearOnly, "linear", false, "Print the linear instead of the cyclic spectrum")
	spectrumCmd.Flags().BoolVar(&showItems, "items", false, "Print the sub-peptide of every mass")
	spectrumCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

var spectrumCmd = &cobra.Command{
	Use:   "spectrum [peptide...]",
	Short: "Print the theoretical spectrum of peptides",
	Long: `Print the integer mass and the theoretical cyclic (or linear) spectrum of
one or more peptides.

Examples:
  pepseq spectrum NQEL
  pepseq spectrum --linear --items PEPE`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpectrum,
}

type spectrumReport struct {
	Peptide          string              `json:"peptide"`
	Mass             int                 `json:"mass"`
	MonoisotopicMass float64             `json:"monoisotopic_mass"`
	Spectrum         core.Spectrum       `json:"spectrum"`
	Items            []core.SpectrumItem `json:"items,omitempty"`
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	var reports []spectrumReport
	for _, arg := range args {
		peptide := strings.ToUpper(arg)
		report, err := buildSpectrumReport(peptide)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	if jsonOutput {
		return printJSON(reports)
	}

	kind := "Cyclic"
	if linearOnly {
		kind = "Linear"
	}
	for _, r := range reports {
		fmt.Printf("%s: mass %d (monoisotopic %.5f)\n", r.Peptide, r.Mass, r.MonoisotopicMass)
		fmt.Printf("%s spectrum: %s\n", kind, r.Spectrum)
		for _, item := range r.Items {
			fmt.Printf("  %6d  %s\n", item.Mass, item.Subpeptide)
		}
	}
	return nil
}

func buildSpectrumReport(peptide string) (spectrumReport, error) {
	r := spectrumReport{Peptide: peptide}

	var err error
	if r.Mass, err = core.PeptideMass(peptide); err != nil {
		return r, err
	}
	if r.MonoisotopicMass, err = core.MonoisotopicMass(peptide); err != nil {
		return r, err
	}
	r.MonoisotopicMass = core.RoundFloat(r.MonoisotopicMass, 5)

	if linearOnly {
		r.Spectrum, err = core.LinearSpectrum(peptide)
	} else {
		r.Spectrum, err = core.CyclicSpectrum(peptide)
	}
	if err != nil {
		return r, err
	}

	if showItems {
		if linearOnly {
			r.Items, err = core.LinearSpectrumItems(peptide)
		} else {
			r.Items, err = core.CyclicSpectrumItems(peptide)
		}
	}
	return r, err
}
