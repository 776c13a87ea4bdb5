package rbac

import "strings"

// Role é o papel fechado de um usuário do sistema.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// DefaultRole é atribuído a cadastros sem papel explícito.
const DefaultRole = RoleOperator

// RoleFromString normaliza papéis vindos de fora (JWT, banco, payload).
// Valores desconhecidos caem em viewer, o papel mais restrito.
func RoleFromString(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleOperator):
		return RoleOperator
	case string(RoleViewer):
		return RoleViewer
	default:
		return RoleViewer
	}
}

// IsValid informa se o valor corresponde a um papel conhecido.
func IsValid(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(RoleAdmin), string(RoleOperator), string(RoleViewer):
		return true
	}
	return false
}

// Capabilities descreve o que um papel pode fazer em cada área.
type Capabilities struct {
	DashboardView   bool
	DashboardExport bool
	FuelProductView bool
	FuelProductEdit bool
	FleetView       bool
	FleetEdit       bool
	UserManage      bool
	Settings        bool
}

// CapabilitiesFor é a única autoridade de papel→permissão do sistema.
func CapabilitiesFor(role Role) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			DashboardView:   true,
			DashboardExport: true,
			FuelProductView: true,
			FuelProductEdit: true,
			FleetView:       true,
			FleetEdit:       true,
			UserManage:      true,
			Settings:        true,
		}
	case RoleOperator:
		return Capabilities{
			DashboardView:   true,
			FuelProductView: true,
			FuelProductEdit: true,
			FleetView:       true,
		}
	default:
		// viewer e qualquer papel desconhecido: somente leitura
		return Capabilities{
			DashboardView:   true,
			FuelProductView: true,
			FleetView:       true,
		}
	}
}

// Section identifica uma área navegável do painel.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionFuel      Section = "combustivel"
	SectionProducts  Section = "produtos"
	SectionSuppliers Section = "fornecedores"
	SectionFleet     Section = "frota"
	SectionReports   Section = "relatorios"
	SectionUsers     Section = "usuarios"
	SectionSettings  Section = "configuracoes"
)

var navigation = []struct {
	section Section
	roles   []Role
}{
	{SectionDashboard, []Role{RoleAdmin, RoleOperator, RoleViewer}},
	{SectionFuel, []Role{RoleAdmin, RoleOperator}},
	{SectionProducts, []Role{RoleAdmin, RoleOperator}},
	{SectionSuppliers, []Role{RoleAdmin}},
	{SectionFleet, []Role{RoleAdmin}},
	{SectionReports, []Role{RoleAdmin, RoleOperator, RoleViewer}},
	{SectionUsers, []Role{RoleAdmin}},
	{SectionSettings, []Role{RoleAdmin}},
}

// VisibleSections devolve, em ordem de menu, as seções visíveis ao papel.
// Sem identidade (papel vazio) nenhuma seção é visível.
func VisibleSections(role string) []Section {
	if strings.TrimSpace(role) == "" {
		return nil
	}

	resolved := RoleFromString(role)
	var visible []Section
	for _, entry := range navigation {
		for _, allowed := range entry.roles {
			if allowed == resolved {
				visible = append(visible, entry.section)
				break
			}
		}
	}
	return visible
}
