package preview

import "github.com/pkg/errors"

// ErrUnknownAction 表示预览页发送了无法识别的操作
var ErrUnknownAction = errors.New("unknown action")

func errUnknownAction(action string) error {
	return errors.Wrapf(ErrUnknownAction, "%q", action)
}
