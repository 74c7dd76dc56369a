package playwright

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/applitest/testrunner-mcp/pkg/domain"
	"github.com/applitest/testrunner-mcp/pkg/translate"
	pw "github.com/playwright-community/playwright-go"
)

// Step commands understood by the engine.
const (
	CmdNavigate                = "navigate"
	CmdClick                   = "click"
	CmdDoubleClick             = "double-click"
	CmdHover                   = "hover"
	CmdInputText               = "input-text"
	CmdClear                   = "clear"
	CmdPressKey                = "press-key"
	CmdItemSelect              = "item-select"
	CmdCheck                   = "check"
	CmdUncheck                 = "uncheck"
	CmdWaitForElement          = "wait-for-element"
	CmdPause                   = "pause"
	CmdExecuteScript           = "execute-script"
	CmdAssertText              = "assert-text"
	CmdAssertIsDisplayed       = "assert-is-displayed"
	CmdAssertNotDisplayed      = "assert-not-displayed"
	CmdAssertTitle             = "assert-title"
	CmdAssertURL               = "assert-url"
	CmdAssertValue             = "assert-value"
	CmdAssertAccessibilityTree = "assert-accessibility-tree"
)

// Commands lists every supported step command.
var Commands = []string{
	CmdNavigate, CmdClick, CmdDoubleClick, CmdHover, CmdInputText, CmdClear, CmdPressKey,
	CmdItemSelect, CmdCheck, CmdUncheck, CmdWaitForElement, CmdPause, CmdExecuteScript,
	CmdAssertText, CmdAssertIsDisplayed, CmdAssertNotDisplayed, CmdAssertTitle, CmdAssertURL,
	CmdAssertValue, CmdAssertAccessibilityTree,
}

const (
	defaultPause = time.Second
	pollInterval = 250 * time.Millisecond
)

// stepRunner executes steps against one page.
type stepRunner struct {
	page    pw.Page
	vars    map[string]string
	timeout time.Duration
}

func (r stepRunner) element(step domain.Step) (pw.Locator, error) {
	return resolve(r.page, step.Selectors, step.Position)
}

func (r stepRunner) run(step domain.Step) error {
	switch step.Command {
	case CmdNavigate:
		url := step.Value
		if url == "" {
			url = r.vars[translate.StartURLVariable]
		}
		if url == "" {
			return errors.New("navigate requires a value or a startUrl variable")
		}
		_, err := r.page.Goto(url)
		return err

	case CmdClick, CmdDoubleClick, CmdHover, CmdInputText, CmdClear, CmdPressKey,
		CmdItemSelect, CmdCheck, CmdUncheck:
		return r.interact(step)

	case CmdWaitForElement:
		return r.waitFor(step)

	case CmdPause:
		d := defaultPause
		if step.Value != "" {
			ms, err := strconv.Atoi(step.Value)
			if err != nil {
				return fmt.Errorf("pause: invalid duration %q", step.Value)
			}
			d = time.Duration(ms) * time.Millisecond
		}
		r.page.WaitForTimeout(float64(d.Milliseconds()))
		return nil

	case CmdExecuteScript:
		_, err := r.page.Evaluate(step.Value)
		return err

	case CmdAssertTitle:
		title, err := r.page.Title()
		if err != nil {
			return err
		}
		return assertion("title", step.Operator, OpEqual, title, step.Value)

	case CmdAssertURL:
		return assertion("url", step.Operator, OpEqual, r.page.URL(), step.Value)

	case CmdAssertText, CmdAssertValue, CmdAssertIsDisplayed, CmdAssertNotDisplayed, CmdAssertAccessibilityTree:
		return r.assertElement(step)

	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, step.Command)
	}
}

func (r stepRunner) interact(step domain.Step) error {
	loc, err := r.element(step)
	if err != nil {
		return err
	}

	switch step.Command {
	case CmdClick:
		return loc.Click()
	case CmdDoubleClick:
		return loc.Dblclick()
	case CmdHover:
		return loc.Hover()
	case CmdInputText:
		return loc.Fill(step.Value)
	case CmdClear:
		return loc.Clear()
	case CmdPressKey:
		return loc.Press(step.Value)
	case CmdItemSelect:
		_, err := loc.SelectOption(pw.SelectOptionValues{Values: &[]string{step.Value}})
		return err
	case CmdCheck:
		return loc.Check()
	case CmdUncheck:
		return loc.Uncheck()
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, step.Command)
}

// waitFor polls the candidate selectors until one matches. value overrides the timeout in ms.
func (r stepRunner) waitFor(step domain.Step) error {
	timeout := r.timeout
	if step.Value != "" {
		ms, err := strconv.Atoi(step.Value)
		if err != nil {
			return fmt.Errorf("wait-for-element: invalid timeout %q", step.Value)
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	deadline := time.Now().Add(timeout)
	for {
		_, err := r.element(step)
		if err == nil || !errors.Is(err, domain.ErrNoElement) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("wait-for-element timed out after %s: %w", timeout, err)
		}
		r.page.WaitForTimeout(float64(pollInterval.Milliseconds()))
	}
}

func (r stepRunner) assertElement(step domain.Step) error {
	loc, err := r.element(step)
	if step.Command == CmdAssertNotDisplayed {
		if errors.Is(err, domain.ErrNoElement) {
			return nil
		}
		if err != nil {
			return err
		}
		visible, err := loc.IsVisible()
		if err != nil {
			return err
		}
		if visible {
			return errors.New("element is displayed")
		}
		return nil
	}
	if err != nil {
		return err
	}

	switch step.Command {
	case CmdAssertIsDisplayed:
		visible, err := loc.IsVisible()
		if err != nil {
			return err
		}
		if !visible {
			return errors.New("element is not displayed")
		}
		return nil
	case CmdAssertText:
		text, err := loc.InnerText()
		if err != nil {
			return err
		}
		return assertion("text", step.Operator, OpEqual, text, step.Value)
	case CmdAssertValue:
		value, err := loc.InputValue()
		if err != nil {
			return err
		}
		return assertion("value", step.Operator, OpEqual, value, step.Value)
	default:
		snapshot, err := loc.AriaSnapshot()
		if err != nil {
			return err
		}
		return assertion("accessibility tree", step.Operator, OpContains, snapshot, step.Value)
	}
}
