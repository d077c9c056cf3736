package widgets

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gpellis87/intel-briefing/app/cache"
)

const yahooChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// chartPoints bounds the sparkline history returned per symbol.
const chartPoints = 30

type marketSymbol struct {
	Symbol string
	Label  string
}

var marketSymbols = []marketSymbol{
	{"^GSPC", "S&P 500"},
	{"^IXIC", "NASDAQ"},
	{"^DJI", "DOW"},
	{"^RUT", "RUSSELL 2000"},
	{"GC=F", "GOLD"},
	{"CL=F", "OIL"},
	{"BTC-USD", "BTC"},
}

var allowedRanges = map[string]bool{"1d": true, "5d": true, "1mo": true}

// MarketQuote is one index/commodity quote for the ticker.
type MarketQuote struct {
	Symbol        string    `json:"symbol"`
	Label         string    `json:"label"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	ChartData     []float64 `json:"chartData"`
}

// Markets proxies the Yahoo Finance chart API for a fixed symbol list,
// cached per range.
type Markets struct {
	cache      *cache.Cache[[]MarketQuote]
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

func NewMarkets(quoteCache *cache.Cache[[]MarketQuote], httpClient *http.Client,
	userAgent string, timeout time.Duration) *Markets {
	return &Markets{
		cache:      quoteCache,
		httpClient: httpClient,
		baseURL:    yahooChartBaseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Quotes returns the quote list for a chart range, serving the per-range
// cache when fresh. Unknown ranges normalize to "1d". Symbols that fail to
// fetch are simply absent from the result.
func (m *Markets) Quotes(ctx context.Context, chartRange string) ([]MarketQuote, string) {
	if !allowedRanges[chartRange] {
		chartRange = "1d"
	}

	if cached, fresh := m.cache.Get(chartRange); fresh {
		return cached, chartRange
	}

	var (
		mu     sync.Mutex
		quotes []MarketQuote
	)

	g, gCtx := errgroup.WithContext(ctx)
	for _, symbol := range marketSymbols {
		g.Go(func() error {
			quote, err := m.fetchSymbol(gCtx, symbol, chartRange)
			if err != nil {
				slog.Warn("Market quote fetch failed", "symbol", symbol.Symbol, "error", err)
				return nil
			}

			mu.Lock()
			quotes = append(quotes, quote)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if len(quotes) > 0 {
		m.cache.Set(chartRange, quotes)
	}

	return quotes, chartRange
}

func (m *Markets) fetchSymbol(ctx context.Context, symbol marketSymbol, chartRange string) (MarketQuote, error) {
	requestURL := fmt.Sprintf("%s%s?interval=1d&range=%s", m.baseURL, url.PathEscape(symbol.Symbol), chartRange)

	var payload yahooChartResponse
	if err := fetchJSON(ctx, m.httpClient, requestURL, m.userAgent, m.timeout, &payload); err != nil {
		return MarketQuote{}, err
	}

	if len(payload.Chart.Result) == 0 {
		return MarketQuote{}, fmt.Errorf("empty chart result")
	}
	result := payload.Chart.Result[0]

	var closes []float64
	if len(result.Indicators.Quote) > 0 {
		for _, value := range result.Indicators.Quote[0].Close {
			if value != nil && !math.IsNaN(*value) {
				closes = append(closes, *value)
			}
		}
	}

	price := result.Meta.RegularMarketPrice
	if price == 0 && len(closes) > 0 {
		price = closes[len(closes)-1]
	}

	prevClose := result.Meta.PreviousClose
	if prevClose == 0 {
		prevClose = result.Meta.ChartPreviousClose
	}
	if prevClose == 0 && len(closes) > 1 {
		prevClose = closes[len(closes)-2]
	}
	if prevClose == 0 {
		prevClose = price
	}

	change := price - prevClose
	changePercent := 0.0
	if prevClose > 0 {
		changePercent = change / prevClose * 100
	}

	if len(closes) > chartPoints {
		closes = closes[len(closes)-chartPoints:]
	}
	for i, value := range closes {
		closes[i] = round2(value)
	}

	return MarketQuote{
		Symbol:        symbol.Symbol,
		Label:         symbol.Label,
		Price:         round2(price),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		ChartData:     closes,
	}, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
