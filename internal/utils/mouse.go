package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn   *xgb.Conn
	XRoot   xproto.Window
	XScreen *xproto.ScreenInfo
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	XScreen = setup.DefaultScreen(XConn)
	XRoot = XScreen.Root
	return nil
}

// GetGlobalMousePosition queries the pointer on the root window, so it keeps
// working when the parallax window is unfocused or covered.
func GetGlobalMousePosition() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

// GetRootSize returns the root window size in pixels.
func GetRootSize() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}
	return int(XScreen.WidthInPixels), int(XScreen.HeightInPixels), nil
}

func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
		XScreen = nil
	}
}
