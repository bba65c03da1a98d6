package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/tradereport/src/models"
)

func rankingFixture() []models.StockSummary {
	return []models.StockSummary{
		{Symbol: "AAPL", Profit: d("300"), TradeCount: 2},
		{Symbol: "ENB.TO", Profit: d("-120"), TradeCount: 5},
		{Symbol: "JNJ", Profit: d("50"), TradeCount: 1},
		{Symbol: "SHOP", Profit: d("-40"), TradeCount: 3},
	}
}

func TestTopGainers(t *testing.T) {
	top := TopGainers(rankingFixture(), 2)

	require.Len(t, top, 2)
	assert.Equal(t, "AAPL", top[0].Symbol)
	assert.Equal(t, "JNJ", top[1].Symbol)
}

func TestTopLosers(t *testing.T) {
	top := TopLosers(rankingFixture(), 2)

	require.Len(t, top, 2)
	assert.Equal(t, "ENB.TO", top[0].Symbol)
	assert.Equal(t, "SHOP", top[1].Symbol)
}

func TestMostActive(t *testing.T) {
	top := MostActive(rankingFixture(), 3)

	require.Len(t, top, 3)
	assert.Equal(t, "ENB.TO", top[0].Symbol)
	assert.Equal(t, "SHOP", top[1].Symbol)
	assert.Equal(t, "AAPL", top[2].Symbol)
}

func TestRankingDoesNotMutateInput(t *testing.T) {
	stocks := rankingFixture()

	TopGainers(stocks, 2)

	assert.Equal(t, "AAPL", stocks[0].Symbol)
	assert.Equal(t, "ENB.TO", stocks[1].Symbol)
}

func TestRankingClampsToAvailableRows(t *testing.T) {
	assert.Len(t, TopGainers(rankingFixture(), 50), 4)
	assert.Empty(t, TopGainers(nil, 10))
}

func TestBiggestSales(t *testing.T) {
	sales := []models.RealizedSale{
		{Symbol: "AAPL", Revenue: d("1200")},
		{Symbol: "JNJ", Revenue: d("4000")},
		{Symbol: "SHOP", Revenue: d("900")},
	}

	top := BiggestSales(sales, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "JNJ", top[0].Symbol)
	assert.Equal(t, "AAPL", top[1].Symbol)
	assert.Equal(t, "AAPL", sales[0].Symbol, "input order preserved")
}
