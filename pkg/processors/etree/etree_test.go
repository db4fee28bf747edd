package etree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtoad/amazonproduct-go/pkg/processors"
)

const itemSearchResponse = `<?xml version="1.0" encoding="UTF-8"?>
<ItemSearchResponse xmlns="http://webservices.amazon.com/AWSECommerceService/2011-08-01">
  <Items>
    <Request>
      <IsValid>True</IsValid>
      <ItemSearchRequest>
        <ItemPage>2</ItemPage>
        <SearchIndex>Books</SearchIndex>
      </ItemSearchRequest>
    </Request>
    <TotalResults>42</TotalResults>
    <TotalPages>5</TotalPages>
    <Item>
      <ASIN>0131103628</ASIN>
      <ItemAttributes><Title>The C Programming Language</Title></ItemAttributes>
    </Item>
    <Item>
      <ASIN>0201616224</ASIN>
      <ItemAttributes><Title>The Pragmatic Programmer</Title></ItemAttributes>
    </Item>
  </Items>
</ItemSearchResponse>`

func TestParse_FindText(t *testing.T) {
	p := New()
	doc, err := p.Parse(strings.NewReader(itemSearchResponse))
	require.NoError(t, err)

	asin, ok := doc.FindText("//Items/Item/ASIN")
	require.True(t, ok)
	assert.Equal(t, "0131103628", asin)

	total, ok := doc.FindText("//Items/TotalPages")
	require.True(t, ok)
	assert.Equal(t, "5", total)

	_, ok = doc.FindText("//Items/NoSuchElement")
	assert.False(t, ok)
}

func TestParse_FindTexts(t *testing.T) {
	p := New()
	doc, err := p.Parse(strings.NewReader(itemSearchResponse))
	require.NoError(t, err)

	asins := doc.FindTexts("//Items/Item/ASIN")
	assert.Equal(t, []string{"0131103628", "0201616224"}, asins)

	titles := doc.FindTexts("//ItemAttributes/Title")
	assert.Equal(t, []string{
		"The C Programming Language",
		"The Pragmatic Programmer",
	}, titles)

	assert.Empty(t, doc.FindTexts("//Items/NoSuchElement"))
}

func TestParse_ServiceError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "default namespace",
			body: `<?xml version="1.0"?>
<ItemSearchErrorResponse xmlns="http://ecs.amazonaws.com/doc/2011-08-01/">
  <Error>
    <Code>AWS.MissingParameters</Code>
    <Message>Your request is missing required parameters. Required parameters include ItemId.</Message>
  </Error>
  <RequestId>abc-123</RequestId>
</ItemSearchErrorResponse>`,
		},
		{
			name: "prefixed namespace",
			body: `<?xml version="1.0"?>
<aws:ItemSearchErrorResponse xmlns:aws="http://ecs.amazonaws.com/doc/2011-08-01/">
  <aws:Error>
    <aws:Code>AWS.MissingParameters</aws:Code>
    <aws:Message>Your request is missing required parameters. Required parameters include ItemId.</aws:Message>
  </aws:Error>
</aws:ItemSearchErrorResponse>`,
		},
		{
			name: "no namespace",
			body: `<Response><Errors><Error>
  <Code>AWS.MissingParameters</Code>
  <Message>Your request is missing required parameters. Required parameters include ItemId.</Message>
</Error></Errors></Response>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			doc, err := p.Parse(strings.NewReader(tt.body))
			assert.Nil(t, doc)

			var svc *processors.ServiceError
			require.True(t, errors.As(err, &svc))
			assert.Equal(t, "AWS.MissingParameters", svc.Code)
			assert.Contains(t, svc.Message, "ItemId")
			assert.NotNil(t, svc.Document, "full document stays attached to the error")
		})
	}
}

func TestParse_FirstErrorWins(t *testing.T) {
	body := `<Response><Errors>
  <Error><Code>First.Code</Code><Message>first</Message></Error>
  <Error><Code>Second.Code</Code><Message>second</Message></Error>
</Errors></Response>`

	p := New()
	_, err := p.Parse(strings.NewReader(body))

	var svc *processors.ServiceError
	require.True(t, errors.As(err, &svc))
	assert.Equal(t, "First.Code", svc.Code)
}

func TestParse_Malformed(t *testing.T) {
	p := New()
	_, err := p.Parse(strings.NewReader("<unclosed><tag>"))
	assert.Error(t, err)

	var svc *processors.ServiceError
	assert.False(t, errors.As(err, &svc), "decode failures are not service errors")
}

func TestLoadPaginator(t *testing.T) {
	p := New()

	items, ok := p.LoadPaginator(processors.KindItems)
	require.True(t, ok)
	assert.Equal(t, "ItemPage", items.CounterParam())

	related, ok := p.LoadPaginator(processors.KindRelatedItems)
	require.True(t, ok)
	assert.Equal(t, "RelatedItemPage", related.CounterParam())

	_, ok = p.LoadPaginator(processors.Kind("unknown"))
	assert.False(t, ok)
}

func TestLoadPaginator_ReadState(t *testing.T) {
	p := New()
	doc, err := p.Parse(strings.NewReader(itemSearchResponse))
	require.NoError(t, err)

	desc, ok := p.LoadPaginator(processors.KindItems)
	require.True(t, ok)

	state := desc.ReadState(doc)
	assert.Equal(t, processors.PageState{CurrentPage: 2, TotalPages: 5, TotalResults: 42}, state)
}

func TestRegisteredByDefault(t *testing.T) {
	assert.Contains(t, processors.Names(), Name)
}
