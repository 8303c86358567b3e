package model

// Deep copies for the community context document, so an engine can take
// ownership of a snapshot without aliasing the caller's copy. Catalogue
// records (GenerationSystem, EnergyCarrier) are immutable and stay
// shared.

func cloneSeries(s Series) Series {
	if s == nil {
		return nil
	}
	return s.Clone()
}

func (c *ConsumptionProfile) Clone() *ConsumptionProfile {
	if c == nil {
		return nil
	}
	return &ConsumptionProfile{
		TempID:      c.TempID,
		Electricity: cloneSeries(c.Electricity),
		Heating:     cloneSeries(c.Heating),
		Cooling:     cloneSeries(c.Cooling),
		DHW:         cloneSeries(c.DHW),
	}
}

func (d *DemandProfile) Clone() *DemandProfile {
	if d == nil {
		return nil
	}
	return &DemandProfile{
		Electricity: cloneSeries(d.Electricity),
		Heating:     cloneSeries(d.Heating),
		Cooling:     cloneSeries(d.Cooling),
		DHW:         cloneSeries(d.DHW),
	}
}

func (p *GenerationSystemProfile) Clone() *GenerationSystemProfile {
	if p == nil {
		return nil
	}
	return &GenerationSystemProfile{
		ElectricitySystemID: copyIntPtr(p.ElectricitySystemID),
		HeatingSystemID:     copyIntPtr(p.HeatingSystemID),
		CoolingSystemID:     copyIntPtr(p.CoolingSystemID),
		DHWSystemID:         copyIntPtr(p.DHWSystemID),
		ElectricitySystem:   p.ElectricitySystem,
		HeatingSystem:       p.HeatingSystem,
		CoolingSystem:       p.CoolingSystem,
		DHWSystem:           p.DHWSystem,
	}
}

func (a *AvailabilityTS) Clone() *AvailabilityTS {
	if a == nil {
		return nil
	}
	return &AvailabilityTS{
		TempID:  a.TempID,
		Input1:  cloneSeries(a.Input1),
		Input2:  cloneSeries(a.Input2),
		Output1: cloneSeries(a.Output1),
	}
}

func (a *BuildingEnergyAsset) Clone() *BuildingEnergyAsset {
	if a == nil {
		return nil
	}
	out := *a
	out.Availability = a.Availability.Clone()
	out.ElectricitySystemID = copyIntPtr(a.ElectricitySystemID)
	out.HeatingSystemID = copyIntPtr(a.HeatingSystemID)
	out.CoolingSystemID = copyIntPtr(a.CoolingSystemID)
	out.DHWSystemID = copyIntPtr(a.DHWSystemID)
	return &out
}

// cloneBare copies a node without its asset list, breaking the
// node-asset reference cycle.
func (n *Node) cloneBare() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.ContextID = copyIntPtr(n.ContextID)
	out.AssetInputs = nil
	return &out
}

func (n *Node) Clone() *Node {
	out := n.cloneBare()
	if out == nil {
		return nil
	}
	for _, a := range n.AssetInputs {
		out.AssetInputs = append(out.AssetInputs, a.Clone())
	}
	return out
}

func (a *CommunityEnergyAsset) Clone() *CommunityEnergyAsset {
	if a == nil {
		return nil
	}
	out := *a
	out.InputNode = a.InputNode.cloneBare()
	out.OutputNode = a.OutputNode.cloneBare()
	out.Availability = a.Availability.Clone()
	return &out
}

func (b *Building) Clone() *Building {
	if b == nil {
		return nil
	}
	out := *b
	out.Demand = b.Demand.Clone()
	return &out
}

func (b *BuildingContext) Clone() *BuildingContext {
	if b == nil {
		return nil
	}
	out := *b
	out.Building = b.Building.Clone()
	out.Consumption = b.Consumption.Clone()
	out.Profile = b.Profile.Clone()
	out.ProfileID = copyIntPtr(b.ProfileID)
	out.Assets = nil
	for _, a := range b.Assets {
		out.Assets = append(out.Assets, a.Clone())
	}
	return &out
}

// Clone deep-copies the whole context document.
func (c *CommunityContext) Clone() *CommunityContext {
	if c == nil {
		return nil
	}
	out := *c
	out.Buildings = nil
	for _, b := range c.Buildings {
		out.Buildings = append(out.Buildings, b.Clone())
	}
	out.CommunityAssets = nil
	for _, a := range c.CommunityAssets {
		out.CommunityAssets = append(out.CommunityAssets, a.Clone())
	}
	out.Nodes = nil
	for _, n := range c.Nodes {
		out.Nodes = append(out.Nodes, n.Clone())
	}
	return &out
}
