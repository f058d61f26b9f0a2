// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sqlfront/funcsig/pkg/sql/sem/tree"
	"github.com/sqlfront/funcsig/pkg/sql/types"
	"gopkg.in/yaml.v3"
)

// catalogFile is the format of the file passed with --catalog-file:
//
//	functions:
//	- name: collect_bag
//	  class: aggregate
//	  signatures:
//	  - args: [any#0]
//	    returns: follow#0[]
//	  empty_input: empty_array
type catalogFile struct {
	Functions []functionEntry `yaml:"functions"`
}

type functionEntry struct {
	Name       string           `yaml:"name"`
	Class      string           `yaml:"class"`
	Category   string           `yaml:"category"`
	Info       string           `yaml:"info"`
	Signatures []signatureEntry `yaml:"signatures"`
	// EmptyInput is kept as a node so that the bare word null names a
	// policy rather than decoding to the empty string.
	EmptyInput yaml.Node `yaml:"empty_input"`
}

type signatureEntry struct {
	Args     []string `yaml:"args"`
	Returns  string   `yaml:"returns"`
	Variadic bool     `yaml:"variadic"`
}

// Values of empty_input.
const (
	emptyInputNone       = ""
	emptyInputNull       = "null"
	emptyInputEmptyArray = "empty_array"
	emptyInputZero       = "zero"
)

// loadCatalogFile reads function definitions from the named YAML file.
func loadCatalogFile(path string) ([]*tree.FunctionDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog file")
	}
	defer f.Close()
	defs, err := parseCatalog(f)
	return defs, errors.Wrapf(err, "loading %s", path)
}

func parseCatalog(r io.Reader) ([]*tree.FunctionDefinition, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	var file catalogFile
	dec := yaml.NewDecoder(&buf)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parsing YAML")
	}
	defs := make([]*tree.FunctionDefinition, 0, len(file.Functions))
	for i := range file.Functions {
		d, err := file.Functions[i].definition()
		if err != nil {
			return nil, errors.Wrapf(err, "function %d (%s)", i+1, file.Functions[i].Name)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func (fs *functionEntry) definition() (*tree.FunctionDefinition, error) {
	d := &tree.FunctionDefinition{
		Name: fs.Name,
		FunctionProperties: tree.FunctionProperties{
			Category: fs.Category,
			Info:     fs.Info,
		},
	}
	if fs.Class != "" {
		c, err := tree.ParseFunctionClass(fs.Class)
		if err != nil {
			return nil, err
		}
		d.Class = c
	}
	for i, ss := range fs.Signatures {
		s, err := ss.signature()
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i+1)
		}
		d.Signatures = append(d.Signatures, s)
	}
	emptyInput, err := fs.emptyInput(d.Signatures)
	if err != nil {
		return nil, err
	}
	d.EmptyInput = emptyInput
	return d, nil
}

func (ss signatureEntry) signature() (tree.Signature, error) {
	ret, err := tree.ParseTypeTemplate(ss.Returns)
	if err != nil {
		return tree.Signature{}, errors.Wrap(err, "returns")
	}
	args := make([]tree.TypeTemplate, len(ss.Args))
	for i, a := range ss.Args {
		if args[i], err = tree.ParseTypeTemplate(a); err != nil {
			return tree.Signature{}, errors.Wrapf(err, "argument %d", i+1)
		}
	}
	if ss.Variadic {
		return tree.Ret(ret).VarArgs(args...), nil
	}
	return tree.Ret(ret).Args(args...), nil
}

// emptyInput returns the empty-input policy named in the file. The policy
// must produce a value of every return type the signatures can bind.
func (fs *functionEntry) emptyInput(
	sigs []tree.Signature,
) (func(retType *types.T) tree.TypedExpr, error) {
	policy := fs.EmptyInput.Value
	switch policy {
	case emptyInputNone:
		return nil, nil
	case emptyInputNull:
		return tree.MakeTypedNull, nil
	case emptyInputEmptyArray:
		for _, s := range sigs {
			if !s.ReturnType.IsArray() {
				return nil, errors.Newf("empty_input %s requires array return types, found %s",
					policy, s.ReturnType)
			}
		}
		return func(retType *types.T) tree.TypedExpr {
			return tree.NewDArray(retType.ArrayContents())
		}, nil
	case emptyInputZero:
		for _, s := range sigs {
			if typ, ok := s.ReturnType.Concrete(); !ok || !typ.IsNumeric() {
				return nil, errors.Newf("empty_input %s requires numeric return types, found %s",
					policy, s.ReturnType)
			}
		}
		return zeroOf, nil
	}
	return nil, errors.Newf("unknown empty_input %q", policy)
}

func zeroOf(retType *types.T) tree.TypedExpr {
	switch retType.Family() {
	case types.FloatFamily:
		return tree.NewDFloat(0)
	case types.DecimalFamily:
		return &tree.DDecimal{}
	default:
		return tree.NewDInt(0)
	}
}
