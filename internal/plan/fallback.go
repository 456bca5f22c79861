package plan

// Fallback returns the deterministic substitute plan used whenever a model
// response cannot be parsed. It does not hit the exact 10/12/12/10/6 counts,
// but it is internally consistent and spreads buildings across all four
// quadrants and the corners, so the pipeline never stalls on a malformed
// response. Two invocations always yield identical plans.
func Fallback() Plan {
	return Plan{
		Analysis: "Creating a comprehensive modern city with full grid coverage",
		Phases: []Phase{
			{
				Phase: 1,
				Name:  "Public Infrastructure",
				Buildings: []Building{
					{Name: "Main Avenue", Type: TypePark, Position: Position{X: 0, Y: 0, Z: 0}, Size: Size{Width: 40, Height: 0.3, Depth: 4}, Color: "#555555"},
					{Name: "Central Park", Type: TypePark, Position: Position{X: -15, Y: 0, Z: 15}, Size: Size{Width: 12, Height: 0.5, Depth: 12}, Color: "#2d5016"},
					{Name: "East Plaza", Type: TypePark, Position: Position{X: 20, Y: 0, Z: 20}, Size: Size{Width: 8, Height: 0.4, Depth: 8}, Color: "#3d6b1f"},
					{Name: "West Garden", Type: TypePark, Position: Position{X: -20, Y: 0, Z: -15}, Size: Size{Width: 10, Height: 0.5, Depth: 10}, Color: "#2d5016"},
				},
			},
			{
				Phase: 2,
				Name:  "Commercial District",
				Buildings: []Building{
					{Name: "Shopping Mall", Type: TypeCommercial, Position: Position{X: -12, Y: 0, Z: -8}, Size: Size{Width: 8, Height: 7, Depth: 8}, Color: "#dc2626"},
					{Name: "Market Center", Type: TypeCommercial, Position: Position{X: 15, Y: 0, Z: -10}, Size: Size{Width: 7, Height: 6, Depth: 7}, Color: "#ea580c"},
					{Name: "Restaurant District", Type: TypeCommercial, Position: Position{X: -25, Y: 0, Z: 5}, Size: Size{Width: 6, Height: 5, Depth: 6}, Color: "#f97316"},
					{Name: "Retail Plaza", Type: TypeCommercial, Position: Position{X: 25, Y: 0, Z: 8}, Size: Size{Width: 7, Height: 6, Depth: 7}, Color: "#fb923c"},
					{Name: "Business Center", Type: TypeCommercial, Position: Position{X: 8, Y: 0, Z: -25}, Size: Size{Width: 6, Height: 7, Depth: 6}, Color: "#dc2626"},
					{Name: "Trade Hub", Type: TypeCommercial, Position: Position{X: -8, Y: 0, Z: 25}, Size: Size{Width: 7, Height: 6, Depth: 7}, Color: "#ea580c"},
				},
			},
			{
				Phase: 3,
				Name:  "Residential Area",
				Buildings: []Building{
					{Name: "Skyline Apartments", Type: TypeResidential, Position: Position{X: -18, Y: 0, Z: -20}, Size: Size{Width: 6, Height: 15, Depth: 6}, Color: "#7c3aed"},
					{Name: "Garden Residences", Type: TypeResidential, Position: Position{X: 18, Y: 0, Z: -18}, Size: Size{Width: 5, Height: 12, Depth: 5}, Color: "#a855f7"},
					{Name: "Harbor View Condos", Type: TypeResidential, Position: Position{X: -22, Y: 0, Z: 22}, Size: Size{Width: 6, Height: 14, Depth: 6}, Color: "#8b5cf6"},
					{Name: "Sunset Towers", Type: TypeResidential, Position: Position{X: 22, Y: 0, Z: 22}, Size: Size{Width: 5, Height: 13, Depth: 5}, Color: "#a855f7"},
					{Name: "Riverside Homes", Type: TypeResidential, Position: Position{X: 12, Y: 0, Z: 12}, Size: Size{Width: 5, Height: 11, Depth: 5}, Color: "#7c3aed"},
					{Name: "Parkside Living", Type: TypeResidential, Position: Position{X: -12, Y: 0, Z: 8}, Size: Size{Width: 5, Height: 12, Depth: 5}, Color: "#9333ea"},
				},
			},
			{
				Phase: 4,
				Name:  "Office District",
				Buildings: []Building{
					{Name: "Corporate Tower A", Type: TypeOffice, Position: Position{X: -10, Y: 0, Z: -28}, Size: Size{Width: 7, Height: 22, Depth: 7}, Color: "#3b82f6"},
					{Name: "Tech Hub", Type: TypeOffice, Position: Position{X: 10, Y: 0, Z: -28}, Size: Size{Width: 6, Height: 20, Depth: 6}, Color: "#0ea5e9"},
					{Name: "Financial Center", Type: TypeOffice, Position: Position{X: 28, Y: 0, Z: -5}, Size: Size{Width: 7, Height: 24, Depth: 7}, Color: "#2563eb"},
					{Name: "Innovation Plaza", Type: TypeOffice, Position: Position{X: -28, Y: 0, Z: -8}, Size: Size{Width: 6, Height: 18, Depth: 6}, Color: "#3b82f6"},
					{Name: "Business Park", Type: TypeOffice, Position: Position{X: 5, Y: 0, Z: -15}, Size: Size{Width: 6, Height: 17, Depth: 6}, Color: "#0ea5e9"},
				},
			},
			{
				Phase: 5,
				Name:  "Public Facilities",
				Buildings: []Building{
					{Name: "City Hospital", Type: TypeCommercial, Position: Position{X: 0, Y: 0, Z: 28}, Size: Size{Width: 10, Height: 10, Depth: 8}, Color: "#10b981"},
					{Name: "Central Library", Type: TypeCommercial, Position: Position{X: -28, Y: 0, Z: -25}, Size: Size{Width: 9, Height: 8, Depth: 7}, Color: "#14b8a6"},
					{Name: "Community Center", Type: TypeCommercial, Position: Position{X: 28, Y: 0, Z: -22}, Size: Size{Width: 8, Height: 9, Depth: 7}, Color: "#10b981"},
				},
			},
		},
	}
}
