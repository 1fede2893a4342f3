package i18n

// Key identifies a UI string.
type Key string

const (
	StrLanguage     Key = "STR_LANGUAGE"
	StrSet          Key = "STR_SET"
	StrBack         Key = "STR_BACK"
	StrSelect       Key = "STR_SELECT"
	StrDirUp        Key = "STR_DIR_UP"
	StrDirDown      Key = "STR_DIR_DOWN"
	StrDirLeft      Key = "STR_DIR_LEFT"
	StrDirRight     Key = "STR_DIR_RIGHT"
	StrNoOpenBook   Key = "STR_NO_OPEN_BOOK"
	StrStartReading Key = "STR_START_READING"
	StrOpening      Key = "STR_OPENING"

	StrSettings     Key = "STR_SETTINGS"
	StrFileTransfer Key = "STR_FILE_TRANSFER"
	StrDisplay      Key = "STR_DISPLAY"
	StrControls     Key = "STR_CONTROLS"
	StrSystem       Key = "STR_SYSTEM"
	StrBatteryPct   Key = "STR_BATTERY_PERCENTAGE"
	StrShow         Key = "STR_SHOW"
	StrHide         Key = "STR_HIDE"
	StrFrontButtons Key = "STR_FRONT_BUTTONS"
	StrLayoutBCLR   Key = "STR_LAYOUT_BACK_CONFIRM_LEFT_RIGHT"
	StrLayoutLRBC   Key = "STR_LAYOUT_LEFT_RIGHT_BACK_CONFIRM"
	StrDeviceName   Key = "STR_DEVICE_NAME"
	StrClearRecents Key = "STR_CLEAR_RECENTS"
	StrClearing     Key = "STR_CLEARING"
	StrPowerOff     Key = "STR_POWER_OFF"
	StrPoweringOff  Key = "STR_POWERING_OFF"

	StrDone  Key = "STR_DONE"
	StrDel   Key = "STR_DEL"
	StrSpace Key = "STR_SPACE"

	StrTransferHint Key = "STR_TRANSFER_HINT"
	StrLibraryEmpty Key = "STR_LIBRARY_EMPTY"
	StrFiles        Key = "STR_FILES"
)
