/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valpere/medtran/internal/pipeline"
)

// exampleText is a sample family-history section of a paediatric report.
const exampleText = `Antecedentes familiares:
- Hermano: antecedentes de laringotraqueomalacia leve. Laringitis y broncoespasmos de repetición.
- Madre: padres no consanguíneos, niegan endogamia. Madre G4, con deseo gestacional ulterior. Niega abortos.
- Padre con 3 hermanos y 3 medios hermanos con alteraciones laríngeas no especificadas.
Antecedentes de rasgo talasémico en progenitores, pero DIFERENTE gen: madre alfa trait, padre beta minor trait.`

var (
	inputText  string
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
	useExample bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate clinical text",
	Long: `Translate clinical text with one request to the configured backend.

The text is read from --text, --input, or standard input. Use --example to
translate a built-in sample report.

The translation is written to standard output (or --output). A model that is
still loading, a rejected request, or a network problem is reported on
standard error and the command exits with status 1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}

		p, closeHistory, err := buildPipeline(pipelineOptions{
			detect:  sourceLang == pipeline.AutoSource,
			history: true,
		})
		if err != nil {
			return err
		}
		defer closeHistory()

		fmt.Fprintf(cmd.ErrOrStderr(), "Translating with %s, please wait...\n", p.Service.Name())

		res := p.Run(cmd.Context(), text, sourceLang, targetLang)
		ok, msg := res.Result()
		if !ok {
			return errors.New(msg)
		}

		if res.Warning != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", res.Warning)
		}

		if outputFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputFile, []byte(msg), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Successfully translated %s to %s\n", res.SourceLang, res.TargetLang)
		return nil
	},
}

func readInput(stdin io.Reader) (string, error) {
	switch {
	case useExample:
		return exampleText, nil
	case inputText != "":
		return inputText, nil
	case inputFile != "":
		if inputFile == outputFile {
			return "", fmt.Errorf("input file and output file cannot be the same")
		}
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputText, "text", "x", "", "Text to translate")
	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for the translation (default stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", pipeline.AutoSource, "Source language code, or auto")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().BoolVar(&useExample, "example", false, "Translate the built-in sample report")

	translateCmd.MarkFlagsMutuallyExclusive("text", "input", "example")
	translateCmd.MarkFlagRequired("target")
}
