package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billex/internal/dedupe"
	"billex/internal/domain"
	"billex/internal/service"
	"billex/mocks"
)

func testConfig() service.ExtractConfig {
	return service.ExtractConfig{
		PageConcurrency: 2,
		Dedupe:          dedupe.DefaultConfig(),
	}
}

func pageImage(n int) domain.PageImage {
	return domain.PageImage{PageNo: n, MIME: "image/jpeg", Data: []byte(fmt.Sprintf("page-%d", n))}
}

func billItem(name string, amount float64) domain.BillItem {
	return domain.BillItem{ItemName: name, ItemAmount: amount, ItemRate: amount, ItemQuantity: 1}
}

func TestExtractFromBytes_TwoPagesWithCrossPageDuplicate(t *testing.T) {
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	data := []byte("pdf-bytes")
	rasterizer.On("Rasterize", mock.Anything, data, "bill.pdf").
		Return([]domain.PageImage{pageImage(1), pageImage(2)}, nil)

	pages.On("Extract", mock.Anything, pageImage(1)).Return(
		&domain.ParsedPageData{PageType: "Bill Detail", Items: []domain.BillItem{
			billItem("Room Rent", 2000),
			billItem("CBC Test", 300),
		}},
		domain.TokenUsage{TotalTokens: 100, InputTokens: 80, OutputTokens: 20},
		nil,
	)
	pages.On("Extract", mock.Anything, pageImage(2)).Return(
		&domain.ParsedPageData{PageType: "Final Bill", Items: []domain.BillItem{
			billItem("CBC TEST", 300.4),
		}},
		domain.TokenUsage{TotalTokens: 50, InputTokens: 40, OutputTokens: 10},
		nil,
	)

	svc := service.NewExtractService(nil, rasterizer, pages, testConfig())
	res, err := svc.ExtractFromBytes(context.Background(), data, "bill.pdf")

	require.NoError(t, err)
	require.Len(t, res.PagewiseLineItems, 2)

	// Pagewise lists keep full detail; only the total reflects dedupe.
	assert.Equal(t, 1, res.PagewiseLineItems[0].PageNo)
	assert.Len(t, res.PagewiseLineItems[0].BillItems, 2)
	assert.Equal(t, 2, res.PagewiseLineItems[1].PageNo)
	assert.Len(t, res.PagewiseLineItems[1].BillItems, 1)
	assert.Equal(t, 2, res.TotalItemCount)

	assert.Equal(t, domain.TokenUsage{TotalTokens: 150, InputTokens: 120, OutputTokens: 30}, res.TokenUsage)
}

func TestExtractFromBytes_PreservesPageOrderUnderConcurrency(t *testing.T) {
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	var images []domain.PageImage
	for n := 1; n <= 8; n++ {
		img := pageImage(n)
		images = append(images, img)
		pages.On("Extract", mock.Anything, img).Return(
			&domain.ParsedPageData{PageType: "Bill Detail", Items: []domain.BillItem{
				billItem(fmt.Sprintf("Item %d", n), float64(n*100)),
			}},
			domain.TokenUsage{TotalTokens: 1},
			nil,
		)
	}
	rasterizer.On("Rasterize", mock.Anything, mock.Anything, mock.Anything).Return(images, nil)

	svc := service.NewExtractService(nil, rasterizer, pages, service.ExtractConfig{
		PageConcurrency: 4,
		Dedupe:          dedupe.DefaultConfig(),
	})
	res, err := svc.ExtractFromBytes(context.Background(), []byte("doc"), "doc.pdf")

	require.NoError(t, err)
	require.Len(t, res.PagewiseLineItems, 8)
	for i, page := range res.PagewiseLineItems {
		assert.Equal(t, i+1, page.PageNo)
		assert.Equal(t, fmt.Sprintf("Item %d", i+1), page.BillItems[0].ItemName)
	}
	assert.Equal(t, 8, res.TokenUsage.TotalTokens)
}

func TestExtractFromBytes_EmptyPageDoesNotAbort(t *testing.T) {
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	rasterizer.On("Rasterize", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PageImage{pageImage(1), pageImage(2)}, nil)

	// Page 1 is a totals-only page: valid JSON, zero items.
	pages.On("Extract", mock.Anything, pageImage(1)).Return(
		&domain.ParsedPageData{PageType: "Final Bill", Items: []domain.BillItem{}},
		domain.TokenUsage{}, nil,
	)
	pages.On("Extract", mock.Anything, pageImage(2)).Return(
		&domain.ParsedPageData{PageType: "Pharmacy", Items: []domain.BillItem{billItem("Gauze", 40)}},
		domain.TokenUsage{}, nil,
	)

	svc := service.NewExtractService(nil, rasterizer, pages, testConfig())
	res, err := svc.ExtractFromBytes(context.Background(), []byte("doc"), "doc.pdf")

	require.NoError(t, err)
	assert.Empty(t, res.PagewiseLineItems[0].BillItems)
	assert.Len(t, res.PagewiseLineItems[1].BillItems, 1)
	assert.Equal(t, 1, res.TotalItemCount)
}

func TestExtractFromBytes_ExplicitZeroThresholdIsAmountOnlyDedupe(t *testing.T) {
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	rasterizer.On("Rasterize", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PageImage{pageImage(1)}, nil)
	pages.On("Extract", mock.Anything, pageImage(1)).Return(
		&domain.ParsedPageData{PageType: "Bill Detail", Items: []domain.BillItem{
			billItem("Room Rent", 100),
			billItem("Completely Different Name", 100.5),
			billItem("X-Ray", 500),
		}},
		domain.TokenUsage{}, nil,
	)

	// A zero threshold is a deliberate policy (every name pair matches, so
	// only the amount decides) and must not be replaced by the defaults.
	svc := service.NewExtractService(nil, rasterizer, pages, service.ExtractConfig{
		PageConcurrency: 1,
		Dedupe:          dedupe.Config{NameThreshold: 0, AmountTolerance: 1.0},
	})
	res, err := svc.ExtractFromBytes(context.Background(), []byte("doc"), "doc.pdf")

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalItemCount)
}

func TestExtractFromBytes_PageFailureIsFatal(t *testing.T) {
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	rasterizer.On("Rasterize", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PageImage{pageImage(1), pageImage(2)}, nil)

	pages.On("Extract", mock.Anything, pageImage(1)).Return(
		&domain.ParsedPageData{PageType: "Bill Detail", Items: []domain.BillItem{billItem("A", 1)}},
		domain.TokenUsage{}, nil,
	)
	pageErr := fmt.Errorf("page 2: %w", domain.ErrMalformedJSON)
	pages.On("Extract", mock.Anything, pageImage(2)).Return(nil, domain.TokenUsage{}, pageErr)

	svc := service.NewExtractService(nil, rasterizer, pages, testConfig())
	res, err := svc.ExtractFromBytes(context.Background(), []byte("doc"), "doc.pdf")

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrMalformedJSON))
}

func TestExtractFromBytes_RasterizeFailureIsFatal(t *testing.T) {
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	rasterizer.On("Rasterize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrDecodingFailed)

	svc := service.NewExtractService(nil, rasterizer, pages, testConfig())
	res, err := svc.ExtractFromBytes(context.Background(), []byte("doc"), "doc.bin")

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrDecodingFailed))
	pages.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestExtractFromURL_FetchesThenExtracts(t *testing.T) {
	fetcher := new(mocks.MockDocumentFetcher)
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	data := []byte("downloaded-bytes")
	fetcher.On("Fetch", mock.Anything, "https://example.com/bill.pdf").Return(data, nil)
	rasterizer.On("Rasterize", mock.Anything, data, "https://example.com/bill.pdf").
		Return([]domain.PageImage{pageImage(1)}, nil)
	pages.On("Extract", mock.Anything, pageImage(1)).Return(
		&domain.ParsedPageData{PageType: "Bill Detail", Items: []domain.BillItem{billItem("A", 1)}},
		domain.TokenUsage{}, nil,
	)

	svc := service.NewExtractService(fetcher, rasterizer, pages, testConfig())
	res, err := svc.ExtractFromURL(context.Background(), "https://example.com/bill.pdf")

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalItemCount)
}

func TestExtractFromURL_DownloadFailureIsFatal(t *testing.T) {
	fetcher := new(mocks.MockDocumentFetcher)
	rasterizer := new(mocks.MockRasterizer)
	pages := new(mocks.MockPageExtractor)

	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, domain.ErrDownloadFailed)

	svc := service.NewExtractService(fetcher, rasterizer, pages, testConfig())
	res, err := svc.ExtractFromURL(context.Background(), "https://example.com/missing.pdf")

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrDownloadFailed))
	rasterizer.AssertNotCalled(t, "Rasterize", mock.Anything, mock.Anything, mock.Anything)
}
