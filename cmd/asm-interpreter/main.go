// Copyright 2025, Tomyk9991 <https://github.com/Tomyk9991>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/Tomyk9991/asm-interpreter/vm"
)

func main() {
	var verbose bool
	var dump bool
	var list bool

	asm := &vm.Assembler{}

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump the final machine state to stderr")
	flag.BoolVar(&list, "list", false, "Print the assembled listing, do not execute")
	flag.Func("D", "Predefine an equate as NAME=VALUE (repeatable)", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("not NAME=VALUE: %q", arg)
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one program file", os.Args[0])
	}

	file := flag.Arg(0)
	var input io.Reader = os.Stdin
	if file != "-" {
		inf, err := os.Open(file)
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
		defer inf.Close()
		input = inf
	}

	asm.Verbose = verbose
	prog, err := asm.Parse(input)
	if err != nil {
		log.Fatalf("%v: %v", file, err)
	}

	if list {
		for pc, inst := range prog.Instructions() {
			for _, label := range prog.LabelsAt(pc) {
				fmt.Printf("%v:\n", label)
			}
			fmt.Printf("%4d  %v\n", pc, inst)
		}
		for _, label := range prog.LabelsAt(len(prog.Insts)) {
			fmt.Printf("%v:\n", label)
		}
		return
	}

	m := vm.NewMachine(prog)
	m.Verbose = verbose

	if dump {
		atexit.Register(func() {
			fmt.Fprint(os.Stderr, m.State.String())
		})
	}

	err = m.Run()
	if err != nil {
		log.Println(err)
		atexit.Exit(1)
	}

	code := 0
	value, ok := m.Exit()
	if ok {
		if verbose {
			log.Printf("exit value: %v", value)
		}
		if value.Kind == vm.KIND_INT {
			code = int(value.Int)
		} else {
			code = 1
		}
	}
	atexit.Exit(code)
}
