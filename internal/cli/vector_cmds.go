package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CK6170/vectorkit/numeric"
	"github.com/CK6170/vectorkit/numfmt"
	"github.com/CK6170/vectorkit/operator"
	"github.com/CK6170/vectorkit/ui"
	"github.com/CK6170/vectorkit/vector"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <components...>",
		Short: "Print the binary encoding of a vector as hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args)
			if err != nil {
				return err
			}
			a.log.Debug("encoding", "len", v.Len())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(v.Bytes()))
			return err
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	var ieee bool
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex binary encoding back into a vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("decoding hex: %w", err)
			}
			v, err := vector.FromBytes(b)
			if err != nil {
				return err
			}
			a.log.Debug("decoded", "bytes", len(b), "len", v.Len())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, v.Repr())
			if ieee {
				ui.PrintComponentsIEEE(out, v)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ieee, "ieee", false, "Also list each component's IEEE-754 bits")
	return cmd
}

func newFormatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <components...>",
		Short: "Format a vector with a format spec",
		Long: `Format a vector with a format spec.

The spec applies to every coordinate. A trailing "h" switches to
hyperspherical coordinates <r, θ1, ...>.

Examples:
  vectorkit format 3,4 --spec .2f
  vectorkit format 1,1,1 --spec .5fh`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args)
			if err != nil {
				return err
			}
			text, err := v.FormatSpec(a.cfg.Display.Format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringP("spec", "s", "", "Format spec, e.g. .3f or .3fh")
	return cmd
}

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index <components> <index>",
		Short: "Subscript a vector with an integer or a start:stop:step slice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args[:1])
			if err != nil {
				return err
			}
			var idx any = args[1]
			if strings.Contains(args[1], ":") {
				if idx, err = vector.ParseSlice(args[1]); err != nil {
					return err
				}
			} else if i, err := strconv.Atoi(args[1]); err == nil {
				idx = i
			}
			res, err := v.Index(idx)
			if err != nil {
				return err
			}
			a.log.Debug("index", "index", args[1], "result", numeric.TypeName(res))
			return printResult(cmd, res)
		},
	}
}

const evalLongDesc string = `Evaluate a vector expression.

Binary form:  vectorkit eval <lhs> <op> <rhs>   with op one of + * @
Unary form:   vectorkit eval <neg|pos|abs> <vector>

Operands containing a comma or bracket are vectors, bare numbers are
scalars. Quote '*' to keep the shell from expanding it.`

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <lhs> <op> <rhs> | eval <neg|pos|abs> <vector>",
		Short: "Evaluate a vector expression",
		Long:  evalLongDesc,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := evalArgs(args)
			if err != nil {
				return err
			}
			a.log.Debug("eval", "args", args, "result", numeric.TypeName(res))
			return printResult(cmd, res)
		},
	}
}

func evalArgs(args []string) (any, error) {
	if len(args) == 2 {
		v, err := parseVector(args[1:])
		if err != nil {
			return nil, err
		}
		switch args[0] {
		case "neg":
			return v.Neg(), nil
		case "pos":
			return v.Pos(), nil
		case "abs":
			return v.Abs(), nil
		}
		return nil, fmt.Errorf("unknown unary operator %q", args[0])
	}

	op, ok := operator.ParseOp(args[1])
	if !ok {
		return nil, fmt.Errorf("unknown operator %q", args[1])
	}
	lhs, err := parseOperand(args[0])
	if err != nil {
		return nil, err
	}
	rhs, err := parseOperand(args[2])
	if err != nil {
		return nil, err
	}
	return operator.Apply(op, lhs, rhs)
}

func printResult(cmd *cobra.Command, res any) error {
	var err error
	switch r := res.(type) {
	case *vector.Vector:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Repr())
	case float64:
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", numfmt.Repr(r))
	default:
		_, err = fmt.Fprintln(cmd.OutOrStdout(), res)
	}
	return err
}

func newExploreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <components...>",
		Short: "Explore a vector interactively with single key presses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVector(args)
			if err != nil {
				return err
			}
			spec := strings.TrimSuffix(a.cfg.Display.Format, string(vector.HypersphericalSuffix))
			e, err := ui.NewExplorer(cmd.OutOrStdout(), v, spec)
			if err != nil {
				return err
			}
			ui.PrintVector(cmd.OutOrStdout(), v, "vector")
			ui.DrainKeys()
			return e.Run(cmd.Context(), ui.StartKeyEvents())
		},
	}
	cmd.Flags().StringP("spec", "s", "", "Per-coordinate format spec")
	return cmd
}
