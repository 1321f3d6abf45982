package symbols

import (
	"github.com/synthfeed/pkg/models"
)

// universe is the built-in set of simulated instruments. Tickers are
// fictional; reference prices seed the simulator per symbol.
var universe = []models.SymbolInfo{
	{Symbol: "NEXA", Name: "Nexa Dynamics Inc", Sector: "Tech", BasePrice: 185.00},
	{Symbol: "QBIT", Name: "Qbit Quantum Corp", Sector: "Tech", BasePrice: 92.50},
	{Symbol: "FLUX", Name: "Flux Systems Ltd", Sector: "Tech", BasePrice: 310.00},
	{Symbol: "SYNK", Name: "Synk Networks Inc", Sector: "Tech", BasePrice: 67.25},
	{Symbol: "PULS", Name: "Puls Digital Corp", Sector: "Tech", BasePrice: 145.00},
	{Symbol: "LEDG", Name: "Ledger Capital Group", Sector: "Finance", BasePrice: 78.50},
	{Symbol: "VALT", Name: "Vault Securities Inc", Sector: "Finance", BasePrice: 125.00},
	{Symbol: "MNTX", Name: "Mintex Banking Corp", Sector: "Finance", BasePrice: 165.00},
	{Symbol: "HELX", Name: "Helix Biomedical Inc", Sector: "Healthcare", BasePrice: 195.00},
	{Symbol: "CURA", Name: "Cura Therapeutics", Sector: "Healthcare", BasePrice: 72.00},
	{Symbol: "BIOS", Name: "Bios Pharma Ltd", Sector: "Healthcare", BasePrice: 55.25},
	{Symbol: "VOLT", Name: "Volt Energy Corp", Sector: "Energy", BasePrice: 98.00},
	{Symbol: "SOLR", Name: "Solaris Power Inc", Sector: "Energy", BasePrice: 42.50},
	{Symbol: "BRND", Name: "Brand Global Inc", Sector: "Consumer", BasePrice: 112.00},
	{Symbol: "CRGO", Name: "Cargo Logistics Ltd", Sector: "Industrial", BasePrice: 88.75},
	{Symbol: "GRID", Name: "Grid Composite ETF", Sector: "ETF", BasePrice: 240.00},
}
