// Package catalog holds the static framework question catalogs used to seed
// new assessments.
package catalog

import "github.com/gloomyleo/CyberOT/internal/model"

// Entry is one questionnaire item template.
type Entry struct {
	Category string
	Question string
}

var iec62443Questions = []Entry{
	{Category: "Security Governance", Question: "Has the organization established a cybersecurity policy for OT systems?"},
	{Category: "Security Governance", Question: "Are cybersecurity roles and responsibilities clearly defined for OT systems?"},
	{Category: "Risk Assessment", Question: "Has a comprehensive risk assessment been conducted for OT systems?"},
	{Category: "Risk Assessment", Question: "Are risk assessment results regularly updated and reviewed?"},
	{Category: "Network Segmentation", Question: "Are OT networks properly segmented from IT networks?"},
	{Category: "Network Segmentation", Question: "Are security zones and conduits implemented according to IEC 62443-3-2?"},
	{Category: "Access Control", Question: "Is multi-factor authentication implemented for OT system access?"},
	{Category: "Access Control", Question: "Are user access rights regularly reviewed and updated?"},
	{Category: "Asset Management", Question: "Is there a comprehensive inventory of all OT assets?"},
	{Category: "Asset Management", Question: "Are asset configurations documented and maintained?"},
	{Category: "Incident Response", Question: "Is there an incident response plan specific to OT environments?"},
	{Category: "Incident Response", Question: "Are incident response procedures regularly tested and updated?"},
}

var nistQuestions = []Entry{
	{Category: "Identify", Question: "Are all OT assets identified and documented?"},
	{Category: "Identify", Question: "Are business processes and their dependencies on OT systems documented?"},
	{Category: "Protect", Question: "Are appropriate safeguards implemented to protect OT systems?"},
	{Category: "Protect", Question: "Is access to OT systems controlled and monitored?"},
	{Category: "Detect", Question: "Are security monitoring capabilities implemented for OT systems?"},
	{Category: "Detect", Question: "Can anomalous activities in OT systems be detected?"},
	{Category: "Respond", Question: "Are response procedures established for OT security incidents?"},
	{Category: "Respond", Question: "Can the organization effectively contain OT security incidents?"},
	{Category: "Recover", Question: "Are recovery procedures established for OT systems?"},
	{Category: "Recover", Question: "Can OT systems be restored to normal operations after an incident?"},
}

// Questions returns the ordered catalog for a framework. The second return
// value is false for unsupported frameworks.
func Questions(framework model.Framework) ([]Entry, bool) {
	switch framework {
	case model.FrameworkIEC62443:
		return iec62443Questions, true
	case model.FrameworkNIST:
		return nistQuestions, true
	}
	return nil, false
}

// Supported reports whether a framework has a question catalog.
func Supported(framework model.Framework) bool {
	_, ok := Questions(framework)
	return ok
}
