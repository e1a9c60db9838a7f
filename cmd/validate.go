// ABOUTME: Validate command exposing the field validators offline
// ABOUTME: Exits 1 when the value is rejected so scripts can branch on it

package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/academia-console/internal/validate"
)

var validators = map[string]func(string) validate.Result{
	"name":     validate.Name,
	"dni":      validate.NationalID,
	"email":    validate.Email,
	"phone":    validate.Phone,
	"username": validate.Username,
	"password": validate.Password,
	"grade":    numeric(validate.Grade),
	"price":    numeric(validate.Price),
}

func validatorKinds() []string {
	kinds := make([]string, 0, len(validators))
	for k := range validators {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

var validateCmd = &cobra.Command{
	Use:       "validate <kind> <value>",
	Short:     "Check a value with the console's field validators",
	Long:      "Check a value with the same rules the forms apply.\n\nKinds: " + strings.Join(validatorKinds(), ", "),
	Args:      cobra.ExactArgs(2),
	ValidArgs: validatorKinds(),
	Run: func(cmd *cobra.Command, args []string) {
		exit(runValidate(os.Stdout, args[0], args[1]))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// numeric adapts a float validator to string input.
func numeric(fn func(float64) validate.Result) func(string) validate.Result {
	return func(raw string) validate.Result {
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(raw, ",", ".", 1)), 64)
		if err != nil {
			return validate.Result{Message: "Debe ser un número"}
		}
		return fn(f)
	}
}

// runValidate checks value and returns exit code
func runValidate(w io.Writer, kind, value string) int {
	fn, ok := validators[kind]
	if !ok {
		return printError(w, fmt.Errorf("unknown kind %q (expected one of %s)", kind, strings.Join(validatorKinds(), ", ")))
	}

	r := fn(value)
	if IsJSONOutput() {
		writeJSON(w, r)
	} else {
		fmt.Fprintln(w, r.Message)
	}
	if !r.IsValid {
		return exitFailed
	}
	return exitOK
}
