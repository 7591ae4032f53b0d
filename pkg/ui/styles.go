package ui

import "image/color"

// Screen texts.
const (
	TextPermissionRequired = "Camera permission required"
	TextNoDevice           = "No camera device found"
	TextRetake             = "Retake"
)

// Layout metrics, in Fyne units.
const (
	textSize        = 16
	labelPadding    = 10
	labelRadius     = 10
	labelTop        = 50
	shutterSize     = 70
	shutterBorder   = 5
	shutterBottom   = 40
	previewHeight   = 0.8 // share of the screen used by the reviewed photo
	retakeTopMargin = 20
	retakePadX      = 20
	retakePadY      = 10
	retakeRadius    = 10
)

var (
	backgroundColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff} // #000
	textColor       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // #fff
	labelBgColor    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99} // rgba(0,0,0,0.6)
	shutterFill     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	shutterRing     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	shutterBusy     = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	retakeFill      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	retakeText      = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)
