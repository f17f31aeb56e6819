// Package prompt implements the line-oriented interactive input layer.
// Invalid input is recovered locally by re-prompting; only I/O failures
// propagate to the caller.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"cocoset/pkg/core"
)

const fractionTolerance = 0.001

type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *Prompter) say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// String prompts until a non-empty line is entered.
func (p *Prompter) String(label string) (string, error) {
	for {
		p.say("%s", label)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		p.say("Please enter a value")
	}
}

// Confirm prompts with a y/n question. Any answer other than "y" is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	p.say("%s (y/n)", label)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y"), nil
}

// PositiveInt prompts until a positive integer is entered.
func (p *Prompter) PositiveInt(label string) (int, error) {
	for {
		p.say("%s", label)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			p.say("Please enter a valid number")
			continue
		}
		if n <= 0 {
			p.say("Please enter a positive number")
			continue
		}
		return n, nil
	}
}

// SplitFractions prompts for the three split proportions. Each must lie in
// [0,1] and together they must sum to 1.0 within tolerance; otherwise the
// whole trio is re-entered.
func (p *Prompter) SplitFractions() (train, val, test float64, err error) {
	for {
		fracs := make([]float64, 0, 3)
		retry := false
		for _, name := range []string{"train", "val", "test"} {
			p.say("Enter %s split proportion (0-1):", name)
			line, readErr := p.readLine()
			if readErr != nil {
				return 0, 0, 0, readErr
			}
			f, convErr := strconv.ParseFloat(line, 64)
			if convErr != nil {
				p.say("Please enter valid numbers")
				retry = true
				break
			}
			if f < 0 || f > 1 {
				p.say("Invalid input, please enter a value between 0 and 1")
				retry = true
				break
			}
			fracs = append(fracs, f)
		}
		if retry {
			continue
		}
		sum := fracs[0] + fracs[1] + fracs[2]
		if math.Abs(sum-1.0) > fractionTolerance {
			p.say("Your splits add up to %.3f, but should equal 1.0", sum)
			p.say("Please re-enter your splits")
			continue
		}
		return fracs[0], fracs[1], fracs[2], nil
	}
}

// Ratio prompts until a valid pos:neg ratio with at least one part is
// entered.
func (p *Prompter) Ratio(label string) (core.Ratio, error) {
	for {
		p.say("%s", label)
		line, err := p.readLine()
		if err != nil {
			return core.Ratio{}, err
		}
		ratio, parseErr := core.ParseRatio(line)
		if parseErr != nil {
			p.say("Please enter valid numbers, separated by a colon")
			continue
		}
		if ratio.Total() == 0 {
			p.say("At least one side of the ratio must be non-zero")
			continue
		}
		return ratio, nil
	}
}

// Classes prompts for a comma-separated class list. Entering "help" prints
// the reference file of valid class names and re-prompts.
func (p *Prompter) Classes(label, classesFile string) ([]string, error) {
	for {
		p.say("%s", label)
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(line, "help") {
			p.say("Available classes:")
			content, readErr := os.ReadFile(classesFile)
			if readErr != nil {
				p.say("File not found")
				continue
			}
			p.say("%s", strings.TrimRight(string(content), "\n"))
			continue
		}
		classes := splitClasses(line)
		if len(classes) == 0 {
			p.say("Please enter at least one class")
			continue
		}
		return classes, nil
	}
}

// LabelKind prompts until a supported annotation kind is entered.
func (p *Prompter) LabelKind(label string) (core.LabelKind, error) {
	for {
		p.say("%s", label)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		kind, parseErr := core.ParseLabelKind(line)
		if parseErr != nil {
			p.say("The available types are segmentations or detections")
			continue
		}
		return kind, nil
	}
}

// Request walks the full manual configuration sequence and returns a
// validated DatasetRequest.
func (p *Prompter) Request(classesFile string) (core.DatasetRequest, error) {
	total, err := p.PositiveInt("Enter total number of images for your dataset:")
	if err != nil {
		return core.DatasetRequest{}, err
	}
	train, val, test, err := p.SplitFractions()
	if err != nil {
		return core.DatasetRequest{}, err
	}
	ratio, err := p.Ratio("Enter the desired ratio of images with class to images without class, separated by a colon:")
	if err != nil {
		return core.DatasetRequest{}, err
	}
	classes, err := p.Classes("Enter the classes you want to include in your dataset, separated by commas, or type help for a list of classes", classesFile)
	if err != nil {
		return core.DatasetRequest{}, err
	}
	kind, err := p.LabelKind("Enter the label type you want to include in your dataset. The available types are segmentations or detections")
	if err != nil {
		return core.DatasetRequest{}, err
	}
	return core.NewDatasetRequest(total, train, val, test, ratio, classes, kind)
}

func splitClasses(line string) []string {
	parts := strings.Split(line, ",")
	classes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			classes = append(classes, trimmed)
		}
	}
	return classes
}
