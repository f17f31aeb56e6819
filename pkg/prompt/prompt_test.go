package prompt

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cocoset/pkg/core"

	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestStringRetriesOnEmpty(t *testing.T) {
	p, out := newPrompter("\n\nmydataset\n")
	got, err := p.String("Enter dataset name:")
	require.NoError(t, err)
	require.Equal(t, "mydataset", got)
	require.Contains(t, out.String(), "Please enter a value")
}

func TestConfirm(t *testing.T) {
	p, _ := newPrompter("y\nn\nwhatever\nY\n")

	for _, want := range []bool{true, false, false, true} {
		got, err := p.Confirm("Proceed?")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestConfirmEOF(t *testing.T) {
	p, _ := newPrompter("")
	_, err := p.Confirm("Proceed?")
	require.ErrorIs(t, err, io.EOF)
}

func TestPositiveIntRetries(t *testing.T) {
	p, out := newPrompter("abc\n-5\n0\n300\n")
	got, err := p.PositiveInt("Enter total number of images:")
	require.NoError(t, err)
	require.Equal(t, 300, got)
	require.Contains(t, out.String(), "Please enter a valid number")
	require.Contains(t, out.String(), "Please enter a positive number")
}

func TestSplitFractionsSumRetry(t *testing.T) {
	p, out := newPrompter("0.8\n0.1\n0.2\n0.7\n0.2\n0.1\n")
	train, val, test, err := p.SplitFractions()
	require.NoError(t, err)
	require.Equal(t, 0.7, train)
	require.Equal(t, 0.2, val)
	require.Equal(t, 0.1, test)
	require.Contains(t, out.String(), "add up to 1.100")
	require.Contains(t, out.String(), "Please re-enter your splits")
}

func TestSplitFractionsRangeRetry(t *testing.T) {
	p, out := newPrompter("1.5\n0.7\n0.2\n0.1\n")
	train, _, _, err := p.SplitFractions()
	require.NoError(t, err)
	require.Equal(t, 0.7, train)
	require.Contains(t, out.String(), "between 0 and 1")
}

func TestSplitFractionsTolerance(t *testing.T) {
	p, _ := newPrompter("0.333\n0.333\n0.334\n")
	_, _, _, err := p.SplitFractions()
	require.NoError(t, err)
}

func TestRatioRetries(t *testing.T) {
	p, out := newPrompter("banana\n0:0\n10:1\n")
	ratio, err := p.Ratio("Enter ratio:")
	require.NoError(t, err)
	require.Equal(t, core.Ratio{Positive: 10, Negative: 1}, ratio)
	require.Contains(t, out.String(), "separated by a colon")
	require.Contains(t, out.String(), "non-zero")
}

func TestClassesHelp(t *testing.T) {
	dir := t.TempDir()
	classesFile := filepath.Join(dir, "available_classes.txt")
	require.NoError(t, os.WriteFile(classesFile, []byte("keyboard\nmouse\ncat\n"), 0o600))

	p, out := newPrompter("help\nkeyboard, mouse\n")
	classes, err := p.Classes("Enter classes:", classesFile)
	require.NoError(t, err)
	require.Equal(t, []string{"keyboard", "mouse"}, classes)
	require.Contains(t, out.String(), "Available classes:")
	require.Contains(t, out.String(), "keyboard\nmouse\ncat")
}

func TestClassesHelpMissingFile(t *testing.T) {
	p, out := newPrompter("help\ncat\n")
	classes, err := p.Classes("Enter classes:", filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	require.Equal(t, []string{"cat"}, classes)
	require.Contains(t, out.String(), "File not found")
}

func TestLabelKindRetries(t *testing.T) {
	p, out := newPrompter("boxes\nDetections\n")
	kind, err := p.LabelKind("Enter label type:")
	require.NoError(t, err)
	require.Equal(t, core.LabelDetections, kind)
	require.Contains(t, out.String(), "segmentations or detections")
}

func TestRequestFullSequence(t *testing.T) {
	input := strings.Join([]string{
		"100",          // total
		"0.8", "0.1", "0.1", // splits
		"4:1",          // ratio
		"cat,dog",      // classes
		"segmentations",
	}, "\n") + "\n"

	p, _ := newPrompter(input)
	req, err := p.Request("available_classes.txt")
	require.NoError(t, err)
	require.Equal(t, 100, req.TotalImages)
	require.Equal(t, 0.8, req.TrainFraction)
	require.Equal(t, core.Ratio{Positive: 4, Negative: 1}, req.Ratio)
	require.Equal(t, []string{"cat", "dog"}, req.Classes)
	require.Equal(t, core.LabelSegmentations, req.LabelKind)
}
