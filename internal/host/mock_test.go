package host

import (
	"errors"
)

// keyEvent is a scripted key state change.
type keyEvent struct {
	code    uint8
	pressed bool
}

// mockFrontend replays scripted input per frame and records renders.
type mockFrontend struct {
	input     [][]keyEvent // key events per poll
	quitAfter int          // number of polls before quit is requested, 0 disables quitting
	pollErr   error

	polls   int
	renders int
	pcs     []uint16
}

var errPoll = errors.New("poll failed")

func (f *mockFrontend) PollInput(keys KeySetter) (bool, error) {
	if f.pollErr != nil {
		return false, f.pollErr
	}

	f.polls++
	if f.quitAfter > 0 && f.polls > f.quitAfter {
		return true, nil
	}

	if len(f.input) > 0 {
		for _, event := range f.input[0] {
			if err := keys.SetKey(event.code, event.pressed); err != nil {
				return false, err
			}
		}
		f.input = f.input[1:]
	}
	return false, nil
}

func (f *mockFrontend) Render(view View) error {
	f.renders++
	f.pcs = append(f.pcs, view.PC())
	return nil
}
