package plan

import "fmt"

// SystemArchitect is the system message for the plan request.
const SystemArchitect = "You are an expert city architect. Always respond with valid JSON only."

// SystemQA is the system message for the final validation request.
const SystemQA = "You are a senior QA engineer. Provide detailed but concise validation reports."

// ArchitectPrompt builds the plan request for a user's city prompt. It spells
// out the exact structural and spatial rules the acceptance contract checks.
func ArchitectPrompt(userPrompt string) string {
	return fmt.Sprintf(`You are a city architect. Create a detailed city plan for: "%s"

Create a JSON plan with this EXACT structure (EXACTLY 50 buildings total across 5 phases):

{
  "analysis": "Brief analysis of the request and overall strategy",
  "phases": [
    {
      "phase": 1,
      "name": "Public Infrastructure",
      "buildings": [
        {
          "name": "Main Avenue",
          "type": "park",
          "position": {"x": 0, "y": 0, "z": 0},
          "size": {"width": 30, "height": 0.3, "depth": 4},
          "color": "#555555"
        },
        {
          "name": "Central Park",
          "type": "park",
          "position": {"x": 0, "y": 0, "z": 10},
          "size": {"width": 12, "height": 0.5, "depth": 12},
          "color": "#2d5016"
        }
      ]
    },
    {
      "phase": 2,
      "name": "Commercial District",
      "buildings": [
        {
          "name": "Shopping Mall",
          "type": "commercial",
          "position": {"x": -10, "y": 0, "z": -8},
          "size": {"width": 8, "height": 6, "depth": 8},
          "color": "#dc2626"
        }
      ]
    }
  ]
}

CRITICAL REQUIREMENTS:
- MUST CREATE EXACTLY 50 BUILDINGS TOTAL (including infrastructure)
- Phase 1 (Infrastructure): EXACTLY 10 items (roads, parks, utilities, plazas, gardens)
- Phase 2 (Commercial): EXACTLY 12 buildings (shops, restaurants, malls, markets, stores)
- Phase 3 (Residential): EXACTLY 12 buildings (apartments, houses, condos, towers)
- Phase 4 (Office): EXACTLY 10 buildings (office towers, business centers, corporate buildings)
- Phase 5 (Public Facilities): EXACTLY 6 buildings (schools, hospitals, libraries, community centers, stadiums)
- COUNT CAREFULLY: 10 + 12 + 12 + 10 + 6 = 50 buildings EXACTLY

SPATIAL DISTRIBUTION RULES (CRITICAL):
- MUST USE FULL GRID: x from -30 to +30, z from -30 to +30
- AVOID CENTER CLUSTERING: Maximum 8 buildings in center zone (x: -10 to 10, z: -10 to 10)
- REQUIRE EDGE PLACEMENT: At least 15 buildings must have |x| > 15 OR |z| > 15
- REQUIRE CORNER USAGE: At least 8 buildings in corners (|x| > 20 AND |z| > 20)
- SPREAD EVENLY: Divide grid into 4 quadrants, each must have 10-15 buildings
- Minimum spacing: 4 units between buildings
- Heights: infrastructure 0.3-1, commercial 5-10, residential 10-18, office 15-25, facilities 8-12

EXAMPLE GOOD POSITIONS: (-28, 0, 25), (22, 0, -27), (-15, 0, 28), (29, 0, -18), etc.
EXAMPLE BAD POSITIONS (avoid): (0, 0, 0), (5, 0, 3), (-8, 0, 7), (2, 0, -5), etc.`, userPrompt)
}

// QAPrompt builds the final validation request from the executed plan's
// per-phase totals. The response is stored verbatim; nothing parses it.
func QAPrompt(p Plan) string {
	phaseCount := func(i int) int {
		if i < len(p.Phases) {
			return len(p.Phases[i].Buildings)
		}
		return 0
	}
	return fmt.Sprintf(`Perform final validation for this city project:

Project Summary:
- Total Buildings: %d
- Construction Phases: %d
- Phase 1 (Infrastructure): %d items
- Phase 2 (Commercial): %d buildings
- Phase 3 (Residential): %d buildings
- Phase 4 (Office): %d buildings
- Phase 5 (Public Facilities): %d buildings

Validation Checklist:
1. All buildings created successfully
2. No spatial overlaps or collisions
3. Proper phase sequencing (infrastructure → commercial → residential → office → facilities)
4. Database integrity maintained
5. API endpoints responding correctly
6. 3D visualization rendering properly
7. Performance within acceptable range

Provide a brief validation report with pass/fail status.`,
		p.TotalBuildings(), len(p.Phases),
		phaseCount(0), phaseCount(1), phaseCount(2), phaseCount(3), phaseCount(4))
}
