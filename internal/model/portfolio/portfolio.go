package portfolio

// Client is a wealth-management client record as served by the data API.
type Client struct {
	ID                      string `json:"client_id"`
	Name                    string `json:"name"`
	Type                    string `json:"type"`
	Location                string `json:"location,omitempty"`
	RiskAppetite            string `json:"risk_appetite"`
	TotalPortfolioValue     int64  `json:"total_portfolio_value"`
	RelationshipManagerID   string `json:"relationship_manager_id"`
	RelationshipManagerName string `json:"relationship_manager_name"`
}

// Holding is one stock position inside a client's portfolio.
type Holding struct {
	ClientID     string `json:"client_id"`
	StockSymbol  string `json:"stock_symbol"`
	StockName    string `json:"stock_name"`
	Quantity     int64  `json:"quantity"`
	CurrentValue int64  `json:"current_value"`
}

const (
	TypeFilmStar          = "Film Star"
	TypeSportsPersonality = "Sports Personality"
	crore                 = 10_000_000
)

// Seed provides the sample clients loaded by the development backend.
func Seed() []Client {
	return []Client{
		{ID: "client_001", Name: "Rajesh Kumar", Type: TypeFilmStar, Location: "Mumbai", RiskAppetite: "Moderate", TotalPortfolioValue: 1500 * crore, RelationshipManagerID: "rm_001", RelationshipManagerName: "Anita Desai"},
		{ID: "client_002", Name: "Priya Sharma", Type: TypeSportsPersonality, Location: "Delhi", RiskAppetite: "Aggressive", TotalPortfolioValue: 850 * crore, RelationshipManagerID: "rm_002", RelationshipManagerName: "Rohit Mehra"},
		{ID: "client_003", Name: "Arjun Malhotra", Type: TypeFilmStar, Location: "Bangalore", RiskAppetite: "Conservative", TotalPortfolioValue: 1200 * crore, RelationshipManagerID: "rm_001", RelationshipManagerName: "Anita Desai"},
		{ID: "client_004", Name: "Sneha Patel", Type: TypeSportsPersonality, Location: "Ahmedabad", RiskAppetite: "Moderate", TotalPortfolioValue: 550 * crore, RelationshipManagerID: "rm_003", RelationshipManagerName: "Kavya Iyer"},
		{ID: "client_005", Name: "Vikram Singh", Type: TypeSportsPersonality, Location: "Chandigarh", RiskAppetite: "Aggressive", TotalPortfolioValue: 720 * crore, RelationshipManagerID: "rm_002", RelationshipManagerName: "Rohit Mehra"},
		{ID: "client_006", Name: "Meera Kapoor", Type: TypeFilmStar, Location: "Mumbai", RiskAppetite: "Conservative", TotalPortfolioValue: 980 * crore, RelationshipManagerID: "rm_003", RelationshipManagerName: "Kavya Iyer"},
	}
}

// SeedHoldings provides the sample stock positions for Seed clients.
func SeedHoldings() []Holding {
	return []Holding{
		{ClientID: "client_001", StockSymbol: "RELIANCE", StockName: "Reliance Industries", Quantity: 150000, CurrentValue: 420 * crore},
		{ClientID: "client_001", StockSymbol: "TCS", StockName: "Tata Consultancy Services", Quantity: 60000, CurrentValue: 230 * crore},
		{ClientID: "client_002", StockSymbol: "HDFCBANK", StockName: "HDFC Bank", Quantity: 90000, CurrentValue: 150 * crore},
		{ClientID: "client_003", StockSymbol: "RELIANCE", StockName: "Reliance Industries", Quantity: 110000, CurrentValue: 310 * crore},
		{ClientID: "client_004", StockSymbol: "INFY", StockName: "Infosys", Quantity: 70000, CurrentValue: 120 * crore},
		{ClientID: "client_005", StockSymbol: "TCS", StockName: "Tata Consultancy Services", Quantity: 40000, CurrentValue: 155 * crore},
		{ClientID: "client_006", StockSymbol: "HDFCBANK", StockName: "HDFC Bank", Quantity: 120000, CurrentValue: 200 * crore},
	}
}
