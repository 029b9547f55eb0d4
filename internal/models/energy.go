package models

// EnergyType enumerates the supported generation sources. Declaration order
// is the canonical ordering used for metric breakdowns.
type EnergyType string

const (
	EnergySolar      EnergyType = "Solar"
	EnergyWind       EnergyType = "Wind"
	EnergyNaturalGas EnergyType = "Natural Gas"
	EnergyNuclear    EnergyType = "Nuclear"
	EnergyCoal       EnergyType = "Coal"
	EnergyHydro      EnergyType = "Hydro"
)

// EnergyTypes lists all energy types in canonical order.
var EnergyTypes = []EnergyType{
	EnergySolar,
	EnergyWind,
	EnergyNaturalGas,
	EnergyNuclear,
	EnergyCoal,
	EnergyHydro,
}

func (e EnergyType) Valid() bool {
	for _, known := range EnergyTypes {
		if e == known {
			return true
		}
	}
	return false
}

// ContractStatus is the sales lifecycle state of a contract.
type ContractStatus string

const (
	StatusAvailable ContractStatus = "Available"
	StatusReserved  ContractStatus = "Reserved"
	StatusSold      ContractStatus = "Sold"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}
