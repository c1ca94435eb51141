package messenger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewButtonTemplate_CopiesButtons(t *testing.T) {
	buttons := []Button{NewPostbackButton("One", "ONE")}
	tpl := NewButtonTemplate("pick", buttons...)

	buttons[0].Title = "mutated"
	assert.Equal(t, "One", tpl.Buttons[0].Title)
}

func TestNewGenericTemplate_DefaultAspectRatio(t *testing.T) {
	tpl := NewGenericTemplate("", NewElement("Card", "", "", ""))
	assert.Equal(t, AspectRatioHorizontal, tpl.ImageAspectRatio)
	assert.Equal(t, TemplateTypeGeneric, tpl.TemplateType)
}

func TestNewGenericTemplate_SingleAndSliceAgree(t *testing.T) {
	el := NewElement("Card", "", "", "")
	single := NewGenericTemplate(AspectRatioSquare, el)
	slice := NewGenericTemplate(AspectRatioSquare, []Element{el}...)
	assert.Equal(t, single, slice)
}

func TestNewListTemplate_Defaults(t *testing.T) {
	tpl := NewListTemplate("", nil, NewElement("Item", "", "", ""))
	assert.Equal(t, TopElementStyleLarge, tpl.TopElementStyle)
	assert.Equal(t, TemplateTypeList, tpl.TemplateType)
	assert.Nil(t, tpl.Buttons)
}

func TestNewReceipt_StampsDiscriminatorOnCopy(t *testing.T) {
	original := ReceiptTemplate{RecipientName: "A", OrderNumber: "1"}
	stamped := NewReceipt(original)

	assert.Equal(t, TemplateTypeReceipt, stamped.TemplateType)
	assert.Empty(t, original.TemplateType, "caller value is untouched")
	assert.Equal(t, "A", stamped.RecipientName)
}

func TestNewListElement_ResolvesButtonsByShape(t *testing.T) {
	el := NewListElement(ListElementOptions{
		Title: "Item",
		Buttons: []Button{
			{Title: "Open", URL: "http://example.com"},
			{Title: "Pick", Payload: "PICK"},
			NewCallButton("Call", "+15551234"),
		},
	})

	require.Len(t, el.Buttons, 3)
	assert.Equal(t, ButtonTypeWebURL, el.Buttons[0].Type)
	assert.Equal(t, ButtonTypePostback, el.Buttons[1].Type)
	assert.Equal(t, ButtonTypeCall, el.Buttons[2].Type, "typed buttons pass through unchanged")
}

func TestNewListElement_DefaultAction(t *testing.T) {
	el := NewListElement(ListElementOptions{
		Title:            "Item",
		DefaultActionURL: "http://example.com/item",
	})

	require.NotNil(t, el.DefaultAction)
	assert.Equal(t, ButtonTypeWebURL, el.DefaultAction.Type)
	assert.Equal(t, "http://example.com/item", el.DefaultAction.URL)
}

func TestNewListElement_NoDefaultActionWhenUnset(t *testing.T) {
	el := NewListElement(ListElementOptions{Title: "Item"})
	assert.Nil(t, el.DefaultAction)
}
