// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sqlfront/funcsig/pkg/cli/cliflags"
	"github.com/sqlfront/funcsig/pkg/cli/exit"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgcode"
	"github.com/sqlfront/funcsig/pkg/sql/pgwire/pgerror"
	"github.com/sqlfront/funcsig/pkg/sql/sem/builtins"
	"github.com/sqlfront/funcsig/pkg/sql/sem/normalize"
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/sql/types"
	"github.com/sqlfront/funcsig/pkg/util/log"
)

// cliContext holds the values of the command-line flags.
type cliContext struct {
	catalogFile string
	verbosity   int32
	distinct    bool
}

var cliCtx cliContext

// initCLIDefaults resets cliCtx to its default values. Tests call it
// between runs since the command tree is package-level state.
func initCLIDefaults() {
	cliCtx = cliContext{}
}

// errInvalidCatalogFile marks errors loading --catalog-file.
var errInvalidCatalogFile = errors.New("invalid catalog file")

var funcsigCmd = &cobra.Command{
	Use:   "funcsig [command] (flags)",
	Short: "SQL function signature resolver",
	Long: `
Resolve SQL function calls against the builtin catalog and show the
signature each call binds to.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetVerbosity(cliCtx.verbosity)
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <function> [<type> ...]",
	Short: "resolve a function call over arguments of the given types",
	Long: `
Resolve a call to the named function with one argument of each given type.
The type "null" stands for a NULL literal. Prints the bound signature, the
coercions the call needs, the normalized expression and, for aggregates,
the value over empty input.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the functions in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	cobra.EnableCommandSorting = false

	pf := funcsigCmd.PersistentFlags()
	stringFlag(pf, &cliCtx.catalogFile, cliflags.CatalogFile)
	pf.Int32VarP(&cliCtx.verbosity, cliflags.Verbosity.Name, cliflags.Verbosity.Shorthand,
		0, cliflags.Verbosity.Description)

	boolFlag(resolveCmd.Flags(), &cliCtx.distinct, cliflags.Distinct)

	funcsigCmd.AddCommand(
		resolveCmd,
		listCmd,
	)
}

func stringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Description)
}

func boolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Description)
}

// loadCatalog returns the builtin catalog, extended with the functions of
// --catalog-file if one was given.
func loadCatalog() (*tree.Catalog, error) {
	if cliCtx.catalogFile == "" {
		return builtins.Catalog(), nil
	}
	defs, err := loadCatalogFile(cliCtx.catalogFile)
	if err == nil {
		var c *tree.Catalog
		if c, err = builtins.Catalog().With(defs...); err == nil {
			return c, nil
		}
	}
	return nil, errors.Mark(err, errInvalidCatalogFile)
}

// parseArgs turns type names into placeholder arguments. "null" yields a
// NULL literal.
func parseArgs(names []string) (tree.TypedExprs, error) {
	args := make(tree.TypedExprs, len(names))
	for i, name := range names {
		if strings.EqualFold(name, "null") {
			args[i] = tree.DNull
			continue
		}
		typ, err := types.ParseType(name)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.UndefinedObject, "argument %d", i+1)
		}
		args[i] = tree.NewTypedOrdinalReference(i, typ)
	}
	return args, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := logtags.AddTag(context.Background(), "cmd", "resolve")
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	exprs, err := parseArgs(args[1:])
	if err != nil {
		return err
	}
	d, err := c.ResolveFunction(args[0])
	if err != nil {
		return err
	}
	// NewFuncExpr treats an arity mismatch as an assertion failure.
	if !d.MatchLen(len(exprs)) {
		return errors.Mark(
			pgerror.Newf(pgcode.UndefinedFunction, "%s() does not take %d argument(s)", d.Name, len(exprs)),
			tree.ErrNoMatchingSignature)
	}
	f, err := tree.NewFuncExpr(d, cliCtx.distinct, exprs...)
	if err != nil {
		return err
	}
	resolved, err := f.Resolve(ctx)
	if err != nil {
		return err
	}
	log.VEventf(ctx, 2, "resolved %s", resolved)
	return printResolved(ctx, cmd.OutOrStdout(), resolved)
}

func printResolved(ctx context.Context, w io.Writer, f *tree.FuncExpr) error {
	sig, _ := f.Signature()
	fmt.Fprintf(w, "%s -> %s\n", f, f.ResolvedType())
	fmt.Fprintf(w, "signature %d: %s%s\n", sig.Ordinal(), f.Name(), f.Signatures()[sig.Ordinal()])
	fmt.Fprintf(w, "bound: %s\n", sig)
	for i := 0; i < sig.NumArgs(); i++ {
		if sig.NeedsCoercion(i) {
			fmt.Fprintf(w, "coerce argument %d: %s -> %s\n", i+1, sig.ActualType(i), sig.ArgType(i))
		}
	}
	normalized, err := normalize.Expr(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "normalized: %s\n", normalized)
	if f.Definition().Class == tree.AggregateClass && f.Definition().EmptyInput != nil {
		empty, err := f.ResultForEmptyInput()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "empty input: %s\n", empty)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 1, 2, ' ', 0)
	fmt.Fprintf(tw, "name\tclass\tcategory\tsignatures\n")
	for _, name := range c.Names() {
		d, _ := c.Lookup(name)
		for i, sig := range d.Signatures {
			if i == 0 {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.Class, d.Category, sig)
			} else {
				fmt.Fprintf(tw, "\t\t\t%s\n", sig)
			}
		}
	}
	return tw.Flush()
}

// Run runs the command line with the given arguments.
func Run(args []string) error {
	funcsigCmd.SetArgs(args)
	return funcsigCmd.Execute()
}

// exitCode maps an error returned by Run to the process exit code.
func exitCode(err error) exit.Code {
	switch {
	case err == nil:
		return exit.Success()
	case errors.Is(err, errInvalidCatalogFile):
		return exit.InvalidCatalogFile()
	case errors.Is(err, tree.ErrNoMatchingSignature),
		pgerror.GetPGCode(err) == pgcode.UndefinedFunction:
		return exit.ResolutionFailed()
	case errors.HasAssertionFailure(err):
		return exit.UnspecifiedGoPanic()
	}
	if strings.HasPrefix(err.Error(), "unknown flag") ||
		strings.HasPrefix(err.Error(), "accepts ") ||
		strings.HasPrefix(err.Error(), "requires at least") {
		return exit.CommandLineFlagError()
	}
	return exit.UnspecifiedError()
}

// Main is the entry point of the funcsig binary.
func Main() {
	err := Run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", pgerror.FullError(err))
	}
	exit.WithCode(exitCode(err))
}
