//go:build mage

// Package main contains Mage build targets for ficha developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/xuri/excelize/v2"
)

// workDirs lists the folders a local config.yaml points at.
var workDirs = []string{
	"work/entrada",
	"work/saida",
	"work/processados",
	"work/erros",
	"work/logs",
}

const (
	binDir       = "bin"
	binName      = "ficha"
	cmdPkg       = "./cmd/ficha"
	templatePath = "work/modelo.xlsx"
)

const sampleConfig = `Paths:
  InputFolder: work/entrada
  OutputFolder: work/saida
  ProcessedFolder: work/processados
  ErrorFolder: work/erros
  ExcelTemplate: work/modelo.xlsx
Settings:
  LogFile: work/logs/ficha.log
`

// Init creates the working folders, a blank template and a config.yaml
// pointing at them. Existing files are left untouched.
func Init() error {
	for _, dir := range workDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if err := blankTemplate(); err != nil {
		return err
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		fmt.Println("config.yaml already exists, not overwritten.")
		return nil
	}
	if err := os.WriteFile("config.yaml", []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	fmt.Println("Wrote config.yaml.")
	return nil
}

// blankTemplate writes an empty workbook so a fresh checkout can run end to
// end. Replace it with the real registration form.
func blankTemplate() error {
	if _, err := os.Stat(templatePath); err == nil {
		return nil
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SaveAs(templatePath); err != nil {
		return fmt.Errorf("writing %s: %w", templatePath, err)
	}
	fmt.Println("  ", templatePath)
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	mg.Deps(Test)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs go vet and the unit tests.
func Test() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "test", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
