package ui

import (
	"bytes"
	"image"
	"image/color"
	"runtime"

	cfg "github.com/automoto/whackamole/config"
	"github.com/automoto/whackamole/game"
	"github.com/ebitenui/ebitenui"
	uiimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// OverlayUI draws the overlay with ebitenui. The game talks to the embedded
// OverlayState; Update copies that state onto the widgets once per frame.
type OverlayUI struct {
	*OverlayState

	UI *ebitenui.UI

	// OnClick receives the overlay key of a clicked button.
	OnClick func(target string)

	mobile bool

	progressLabel     *widget.Label
	bannerLabel       *widget.Label
	instructionsLabel *widget.Label
	scoreLabel        *widget.Label
	livesLabel        *widget.Label
	startButton       *widget.Button
	muteButton        *widget.Button
	pauseButton       *widget.Button
	stats             *widget.Container

	// Fonts (stored as interface for ebitenui compatibility)
	bannerFace text.Face
	buttonFace text.Face
	labelFace  text.Face
	smallFace  text.Face
}

// NewOverlayUI creates the overlay widgets. Clicks are forwarded to onClick.
func NewOverlayUI(onClick func(target string)) *OverlayUI {
	o := &OverlayUI{
		OverlayState: NewOverlayState(cfg.UI.CanvasFadeSec, cfg.UI.ProgressEaseSec),
		OnClick:      onClick,
		mobile:       runtime.GOOS == "android" || runtime.GOOS == "ios",
	}

	o.loadFonts()
	o.buildUI()

	return o
}

func (o *OverlayUI) loadFonts() {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		panic(err)
	}

	o.bannerFace = &text.GoTextFace{Source: bold, Size: cfg.UI.BannerSize}
	o.buttonFace = &text.GoTextFace{Source: bold, Size: cfg.UI.ButtonSize}
	o.labelFace = &text.GoTextFace{Source: regular, Size: cfg.UI.LabelSize}
	o.smallFace = &text.GoTextFace{Source: regular, Size: cfg.UI.SmallSize}
}

func (o *OverlayUI) buildUI() {
	// Root container with AnchorLayout to fill the screen; transparent so the
	// game surface shows through
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	rootContainer.AddChild(o.buildCenter())
	rootContainer.AddChild(o.buildStats())
	rootContainer.AddChild(o.buildControls())

	o.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

// buildCenter holds the loading readout, banner, start button and instructions.
func (o *OverlayUI) buildCenter() *widget.Container {
	center := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	o.progressLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &o.labelFace, &widget.LabelColor{
			Idle: cfg.White,
		}),
	)
	center.AddChild(o.progressLabel)

	o.bannerLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &o.bannerFace, &widget.LabelColor{
			Idle: cfg.White,
		}),
	)
	center.AddChild(o.bannerLabel)

	o.startButton = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(160, 48),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
		widget.ButtonOpts.Image(o.startButtonImage()),
		widget.ButtonOpts.Text("", &o.buttonFace, &widget.ButtonTextColor{
			Idle:    cfg.White,
			Hover:   cfg.Gold,
			Pressed: color.RGBA{200, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			o.click(game.OverlayButton)
		}),
	)
	center.AddChild(o.startButton)

	o.instructionsLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &o.smallFace, &widget.LabelColor{
			Idle: cfg.White,
		}),
	)
	center.AddChild(o.instructionsLabel)

	return center
}

func (o *OverlayUI) buildStats() *widget.Container {
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 10, Right: 10}
	o.stats = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(uiimage.NewNineSliceColor(cfg.DarkPanel)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(16),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	o.scoreLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &o.labelFace, &widget.LabelColor{
			Idle: cfg.Gold,
		}),
	)
	o.stats.AddChild(o.scoreLabel)

	o.livesLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &o.labelFace, &widget.LabelColor{
			Idle: cfg.LightRed,
		}),
	)
	o.stats.AddChild(o.livesLabel)

	return o.stats
}

// buildControls holds the mute and pause toggles.
func (o *OverlayUI) buildControls() *widget.Container {
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 6, Right: 6}
	controls := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	o.muteButton = o.toggleButton(game.OverlayMute)
	controls.AddChild(o.muteButton)

	o.pauseButton = o.toggleButton(game.OverlayPause)
	controls.AddChild(o.pauseButton)

	return controls
}

func (o *OverlayUI) toggleButton(target string) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 28)),
		widget.ButtonOpts.Image(o.buttonImage()),
		widget.ButtonOpts.Text("", &o.smallFace, &widget.ButtonTextColor{
			Idle:    cfg.White,
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			o.click(target)
		}),
	)
}

func (o *OverlayUI) click(target string) {
	if o.OnClick != nil {
		o.OnClick(target)
	}
}

func (o *OverlayUI) buttonImage() *widget.ButtonImage {
	idle := uiimage.NewNineSliceColor(color.RGBA{60, 60, 80, 220})
	hover := uiimage.NewNineSliceColor(color.RGBA{80, 80, 100, 230})
	pressed := uiimage.NewNineSliceColor(color.RGBA{40, 40, 60, 230})
	disabled := uiimage.NewNineSliceColor(color.RGBA{40, 40, 40, 200})

	return &widget.ButtonImage{
		Idle:     idle,
		Hover:    hover,
		Pressed:  pressed,
		Disabled: disabled,
	}
}

func (o *OverlayUI) startButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     uiimage.NewNineSliceColor(cfg.ButtonIdle),
		Hover:    uiimage.NewNineSliceColor(cfg.ButtonOver),
		Pressed:  uiimage.NewNineSliceColor(color.RGBA{30, 80, 30, 255}),
		Disabled: uiimage.NewNineSliceColor(color.RGBA{40, 50, 40, 255}),
	}
}

// Update advances tweens by one frame, syncs the widgets and lets ebitenui
// process input.
func (o *OverlayUI) Update() {
	o.OverlayState.Update(1 / float32(ebiten.TPS()))
	o.sync()
	o.UI.Update()
}

func (o *OverlayUI) sync() {
	o.progressLabel.Label = o.ProgressText()
	o.bannerLabel.Label = o.Banner
	o.instructionsLabel.Label = o.InstructionsText(o.mobile)
	o.scoreLabel.Label = o.ScoreText()
	o.livesLabel.Label = o.LivesText()
	setButtonText(o.startButton, o.Button)
	setButtonText(o.muteButton, o.MuteText())
	setButtonText(o.pauseButton, o.PauseText())

	setVisible(o.progressLabel.GetWidget(), o.Visible(game.OverlayLoading))
	setVisible(o.bannerLabel.GetWidget(), o.Visible(game.OverlayBanner))
	setVisible(o.startButton.GetWidget(), o.Visible(game.OverlayButton))
	setVisible(o.instructionsLabel.GetWidget(), o.Visible(game.OverlayInstructions))
	setVisible(o.stats.GetWidget(), o.Visible(game.OverlayStats))
	setVisible(o.scoreLabel.GetWidget(), o.Visible(game.OverlayScore))
	setVisible(o.livesLabel.GetWidget(), o.Visible(game.OverlayLives))
	setVisible(o.muteButton.GetWidget(), o.Visible(game.OverlayMute))
	setVisible(o.pauseButton.GetWidget(), o.Visible(game.OverlayPause))
}

// Draw renders the overlay above the game surface.
func (o *OverlayUI) Draw(screen *ebiten.Image) {
	o.UI.Draw(screen)
}

// Blocked reports whether (x, y) lands on a visible button, so the press is
// not also treated as a tap on the playfield.
func (o *OverlayUI) Blocked(x, y int) bool {
	p := image.Pt(x, y)
	for _, b := range []*widget.Button{o.startButton, o.muteButton, o.pauseButton} {
		w := b.GetWidget()
		if w.Visibility == widget.Visibility_Show && p.In(w.Rect) {
			return true
		}
	}
	return false
}

func setButtonText(b *widget.Button, s string) {
	if textWidget := b.Text(); textWidget != nil {
		textWidget.Label = s
	}
}

func setVisible(w *widget.Widget, visible bool) {
	if visible {
		w.Visibility = widget.Visibility_Show
	} else {
		w.Visibility = widget.Visibility_Hide
	}
}
