package orchestrator

import (
	"fmt"

	"cityline/internal/plan"
)

// step is one narration entry: who tells whom what. Narration is advisory
// observability content; execution never branches on it.
type step struct {
	From    string
	To      string
	Message string
}

// planningScript is the fixed planning discussion emitted before the
// architect request. Role labels come from config; the lines themselves are
// part of the product's presentation.
func (o *Orchestrator) planningScript(userPrompt string) []step {
	architect := o.cfg.RoleLabel("architect")
	database := o.cfg.RoleLabel("database")
	backend := o.cfg.RoleLabel("backend")
	frontend := o.cfg.RoleLabel("frontend")
	qa := o.cfg.RoleLabel("qa")
	return []step{
		{"System", architect, fmt.Sprintf("New city building request: %q. Please analyze and propose approach.", userPrompt)},
		{architect, "All", "Analyzing requirements... I propose we build this in 5 phases: 1) Infrastructure first (roads, utilities, parks), 2) Commercial zone, 3) Residential area, 4) Office district, 5) Public facilities. This ensures proper foundation before vertical construction."},
		{database, architect, "Good approach. For the database, I suggest we use spatial indexing with x,y,z coordinates. Should we also track construction phases and timestamps for each building?"},
		{architect, database, "Yes, definitely track phases and timestamps. Also add building status field (planned, under_construction, completed). We'll need to query buildings by phase later."},
		{backend, "All", "For the backend API, I'll create endpoints for each construction phase. Should we implement real-time progress tracking? Maybe WebSocket for live updates?"},
		{frontend, backend, "Polling should be sufficient for now - WebSocket might be overkill. I'll use Three.js with instanced rendering for better performance when we have 15+ buildings. Planning to add construction animations too."},
		{qa, "All", "I'll need to validate spatial constraints - buildings shouldn't overlap, roads should connect properly. Also need to check color contrast for accessibility. Let's define building spacing rules now."},
		{architect, qa, "Good point. Let's use minimum 2-unit spacing between buildings, roads should be 3-4 units wide. I'll ensure the layout follows grid patterns for realistic city planning."},
		{database, "All", "Should we add metadata like building materials, construction cost, energy efficiency ratings? Could be useful for future analytics."},
		{architect, database, "Let's keep it simple for now - name, type, position, size, color, phase. We can extend the schema later if needed. Focus on core functionality first."},
		{frontend, "All", "For the 3D visualization, I'm thinking: dark grid ground plane, ambient + directional lighting, orbit controls for user interaction. Buildings will scale up with animation when constructed. Thoughts?"},
		{backend, frontend, "Sounds good. Make sure to optimize geometry - use BufferGeometry instead of regular Geometry. Also implement LOD (Level of Detail) if we go beyond 20 buildings."},
		{qa, "All", "I'll create test cases for each phase. We need to verify: 1) Infrastructure loads first, 2) Buildings don't overlap, 3) Colors are distinct, 4) Performance stays above 30fps. Agreed?"},
		{architect, "All", "Perfect. Everyone clear on their roles? Let's proceed with detailed planning. I'll create the master plan now with all 5 phases defined."},
	}
}

// phaseOpening narrates the start of one construction phase.
func (o *Orchestrator) phaseOpening(ph plan.Phase) []step {
	architect := o.cfg.RoleLabel("architect")
	qa := o.cfg.RoleLabel("qa")
	return []step{
		{architect, "All", fmt.Sprintf("Starting Phase %d: %s. This phase includes %d structures.", ph.Phase, ph.Name, len(ph.Buildings))},
		{qa, architect, fmt.Sprintf("Phase %d ready for construction. I'll validate each building as it's created.", ph.Phase)},
	}
}

// buildingProposal narrates one building before its row is inserted.
func (o *Orchestrator) buildingProposal(b plan.Building) []step {
	architect := o.cfg.RoleLabel("architect")
	database := o.cfg.RoleLabel("database")
	frontend := o.cfg.RoleLabel("frontend")
	return []step{
		{architect, "All", fmt.Sprintf("Next: %s (%s). Proposed location: (%g, %g), size: %gx%gx%g",
			b.Name, b.Type, b.Position.X, b.Position.Z, b.Size.Width, b.Size.Height, b.Size.Depth)},
		{database, architect, "Checking spatial constraints... Location is clear, no overlaps detected. Proceeding with database entry."},
		{frontend, "All", fmt.Sprintf("Preparing 3D model for %s. Color: %s. Will animate construction over 2 seconds.", b.Name, b.Color)},
	}
}

// buildingConfirmation narrates one building after its row is inserted.
func (o *Orchestrator) buildingConfirmation(b plan.Building) []step {
	backend := o.cfg.RoleLabel("backend")
	qa := o.cfg.RoleLabel("qa")
	return []step{
		{backend, "All", fmt.Sprintf("%s created successfully. Database updated, API responding with new building data.", b.Name)},
		{qa, "All", fmt.Sprintf("%s validated. Position correct, no collisions, color contrast acceptable. ✓", b.Name)},
	}
}
