// Package slides materializes a deck outline as a real Google Slides
// presentation with the caller's delegated token. Pure orchestration:
// one create call, then every mutation in a single batch.
package slides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	slidesapi "google.golang.org/api/slides/v1"

	"deckgen-backend/internal/templates"
)

const presentationBaseURL = "https://docs.google.com/presentation/d/"

// Slide geometry in EMU on a standard 10x7.5in page.
const (
	pageWidth    = 9144000
	headerHeight = 1000125
	titleLeft    = 457200
	titleTop     = 152400
	titleWidth   = 8229600
	titleHeight  = 762000
	bodyLeft     = 457200
	bodyTop      = 1143000
	bodyWidth    = 8229600
	bodyHeight   = 5029200
)

// Deck is the builder's input outline.
type Deck struct {
	Title  string
	Slides []SlideContent
}

// SlideContent is one content slide.
type SlideContent struct {
	Title   string
	Bullets []string
}

// Result identifies the created presentation.
type Result struct {
	SlidesURL string
	SlidesID  string
}

// Builder creates presentations. Endpoint is overridable for tests;
// empty means the real service.
type Builder struct {
	Endpoint string
}

// NewBuilder builds a Builder against the production endpoint.
func NewBuilder() *Builder {
	return &Builder{}
}

// Create makes an empty presentation, then applies the template and the
// deck content as one batched mutation. Batch failure fails the whole
// operation; no partial-state cleanup is attempted.
func (b *Builder) Create(ctx context.Context, accessToken string, deck Deck, tpl templates.Template) (Result, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}
	if b.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(b.Endpoint))
	}
	srv, err := slidesapi.NewService(ctx, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("slides client: %w", err)
	}

	pres, err := srv.Presentations.Create(&slidesapi.Presentation{Title: deck.Title}).Context(ctx).Do()
	if err != nil {
		return Result{}, fmt.Errorf("create presentation: %w", err)
	}
	if pres == nil || pres.PresentationId == "" {
		return Result{}, errors.New("failed to create presentation")
	}

	reqs := buildRequests(pres, deck, tpl)
	if len(reqs) > 0 {
		_, err = srv.Presentations.BatchUpdate(pres.PresentationId, &slidesapi.BatchUpdatePresentationRequest{
			Requests: reqs,
		}).Context(ctx).Do()
		if err != nil {
			return Result{}, fmt.Errorf("apply slide content: %w", err)
		}
	}

	return Result{
		SlidesURL: presentationBaseURL + pres.PresentationId + "/edit",
		SlidesID:  pres.PresentationId,
	}, nil
}

// buildRequests assembles the full mutation set: title slide styling
// first, then each content slide in input order.
func buildRequests(pres *slidesapi.Presentation, deck Deck, tpl templates.Template) []*slidesapi.Request {
	var reqs []*slidesapi.Request

	if len(pres.Slides) > 0 && pres.Slides[0] != nil {
		reqs = append(reqs, titleSlideRequests(pres.Slides[0], deck.Title, tpl)...)
	}

	for i, slide := range deck.Slides {
		reqs = append(reqs, contentSlideRequests(i, slide, tpl)...)
	}
	return reqs
}

func titleSlideRequests(page *slidesapi.Page, title string, tpl templates.Template) []*slidesapi.Request {
	reqs := []*slidesapi.Request{backgroundRequest(page.ObjectId, tpl.Background)}

	titleShape := findTitlePlaceholder(page)
	if titleShape == "" || title == "" {
		return reqs
	}
	reqs = append(reqs,
		&slidesapi.Request{InsertText: &slidesapi.InsertTextRequest{
			ObjectId: titleShape,
			Text:     title,
		}},
		&slidesapi.Request{UpdateTextStyle: &slidesapi.UpdateTextStyleRequest{
			ObjectId:  titleShape,
			TextRange: &slidesapi.Range{Type: "ALL"},
			Style: &slidesapi.TextStyle{
				ForegroundColor: foreground(tpl.TitleColor),
				Bold:            true,
			},
			Fields: "foregroundColor,bold",
		}},
	)
	return reqs
}

func contentSlideRequests(index int, slide SlideContent, tpl templates.Template) []*slidesapi.Request {
	slideID := fmt.Sprintf("deck_slide_%d", index)
	titleID := slideID + "_title"
	bodyID := slideID + "_body"

	reqs := []*slidesapi.Request{
		{CreateSlide: &slidesapi.CreateSlideRequest{
			ObjectId:       slideID,
			InsertionIndex: int64(index + 1),
			SlideLayoutReference: &slidesapi.LayoutReference{
				PredefinedLayout: "BLANK",
			},
		}},
		backgroundRequest(slideID, tpl.Background),
	}

	if tpl.HeaderColor != "" {
		headerID := slideID + "_header"
		reqs = append(reqs,
			&slidesapi.Request{CreateShape: &slidesapi.CreateShapeRequest{
				ObjectId:          headerID,
				ShapeType:         "RECTANGLE",
				ElementProperties: elementBox(slideID, 0, 0, pageWidth, headerHeight),
			}},
			&slidesapi.Request{UpdateShapeProperties: &slidesapi.UpdateShapePropertiesRequest{
				ObjectId: headerID,
				ShapeProperties: &slidesapi.ShapeProperties{
					ShapeBackgroundFill: &slidesapi.ShapeBackgroundFill{SolidFill: solidFill(tpl.HeaderColor)},
					Outline:             &slidesapi.Outline{PropertyState: "NOT_RENDERED"},
				},
				Fields: "shapeBackgroundFill.solidFill.color,outline.propertyState",
			}},
		)
	}

	reqs = append(reqs,
		&slidesapi.Request{CreateShape: &slidesapi.CreateShapeRequest{
			ObjectId:          titleID,
			ShapeType:         "TEXT_BOX",
			ElementProperties: elementBox(slideID, titleLeft, titleTop, titleWidth, titleHeight),
		}},
		&slidesapi.Request{InsertText: &slidesapi.InsertTextRequest{
			ObjectId: titleID,
			Text:     slide.Title,
		}},
		&slidesapi.Request{UpdateTextStyle: &slidesapi.UpdateTextStyleRequest{
			ObjectId:  titleID,
			TextRange: &slidesapi.Range{Type: "ALL"},
			Style: &slidesapi.TextStyle{
				ForegroundColor: foreground(tpl.TitleColor),
				FontSize:        &slidesapi.Dimension{Magnitude: 24, Unit: "PT"},
				Bold:            true,
			},
			Fields: "foregroundColor,fontSize,bold",
		}},
	)

	body := strings.Join(slide.Bullets, "\n")
	reqs = append(reqs, &slidesapi.Request{CreateShape: &slidesapi.CreateShapeRequest{
		ObjectId:          bodyID,
		ShapeType:         "TEXT_BOX",
		ElementProperties: elementBox(slideID, bodyLeft, bodyTop, bodyWidth, bodyHeight),
	}})
	if body != "" {
		reqs = append(reqs,
			&slidesapi.Request{InsertText: &slidesapi.InsertTextRequest{
				ObjectId: bodyID,
				Text:     body,
			}},
			&slidesapi.Request{UpdateTextStyle: &slidesapi.UpdateTextStyleRequest{
				ObjectId:  bodyID,
				TextRange: &slidesapi.Range{Type: "ALL"},
				Style: &slidesapi.TextStyle{
					ForegroundColor: foreground(tpl.BodyColor),
					FontSize:        &slidesapi.Dimension{Magnitude: 14, Unit: "PT"},
				},
				Fields: "foregroundColor,fontSize",
			}},
			&slidesapi.Request{CreateParagraphBullets: &slidesapi.CreateParagraphBulletsRequest{
				ObjectId:     bodyID,
				TextRange:    &slidesapi.Range{Type: "ALL"},
				BulletPreset: "BULLET_DISC_CIRCLE_SQUARE",
			}},
		)
	}
	return reqs
}

func backgroundRequest(pageID, hex string) *slidesapi.Request {
	return &slidesapi.Request{UpdatePageProperties: &slidesapi.UpdatePagePropertiesRequest{
		ObjectId: pageID,
		PageProperties: &slidesapi.PageProperties{
			PageBackgroundFill: &slidesapi.PageBackgroundFill{SolidFill: solidFill(hex)},
		},
		Fields: "pageBackgroundFill.solidFill.color",
	}}
}

func elementBox(pageID string, left, top, width, height float64) *slidesapi.PageElementProperties {
	return &slidesapi.PageElementProperties{
		PageObjectId: pageID,
		Size: &slidesapi.Size{
			Width:  &slidesapi.Dimension{Magnitude: width, Unit: "EMU"},
			Height: &slidesapi.Dimension{Magnitude: height, Unit: "EMU"},
		},
		Transform: &slidesapi.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: left,
			TranslateY: top,
			Unit:       "EMU",
		},
	}
}

func findTitlePlaceholder(page *slidesapi.Page) string {
	for _, pe := range page.PageElements {
		if pe == nil || pe.Shape == nil || pe.Shape.Placeholder == nil {
			continue
		}
		switch pe.Shape.Placeholder.Type {
		case "CENTERED_TITLE", "TITLE":
			return pe.ObjectId
		}
	}
	return ""
}
