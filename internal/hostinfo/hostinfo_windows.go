//go:build windows

package hostinfo

import (
	"context"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// osCaption queries Win32_OperatingSystem for the friendly OS name
// (e.g. "Microsoft Windows 11 Pro") using COM/OLE.
func osCaption(ctx context.Context) (string, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		// S_FALSE means already initialized, which is fine
		if !ok || oleErr.Code() != 0x00000001 {
			return "", fmt.Errorf("COM initialization failed: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return "", fmt.Errorf("failed to create WMI locator: %w", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", fmt.Errorf("failed to get IDispatch: %w", err)
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", ".", `root\CIMV2`)
	if err != nil {
		return "", fmt.Errorf("failed to connect to root\\CIMV2: %w", err)
	}
	service := serviceRaw.ToIDispatch()
	defer service.Release()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery",
		"SELECT Caption FROM Win32_OperatingSystem")
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	result := resultRaw.ToIDispatch()
	defer result.Release()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	countRaw, err := oleutil.GetProperty(result, "Count")
	if err != nil || countRaw.Val == 0 {
		return "", fmt.Errorf("no Win32_OperatingSystem instance")
	}

	itemRaw, err := oleutil.CallMethod(result, "ItemIndex", 0)
	if err != nil {
		return "", fmt.Errorf("failed to read result item: %w", err)
	}
	item := itemRaw.ToIDispatch()
	defer item.Release()

	captionRaw, err := oleutil.GetProperty(item, "Caption")
	if err != nil {
		return "", fmt.Errorf("failed to read Caption: %w", err)
	}
	return captionRaw.ToString(), nil
}
