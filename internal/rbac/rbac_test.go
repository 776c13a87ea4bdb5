package rbac

import (
	"reflect"
	"testing"
)

func TestVisibleSectionsPorPapel(t *testing.T) {
	tests := []struct {
		name string
		role string
		want []Section
	}{
		{
			name: "admin enxerga tudo",
			role: "admin",
			want: []Section{
				SectionDashboard, SectionFuel, SectionProducts, SectionSuppliers,
				SectionFleet, SectionReports, SectionUsers, SectionSettings,
			},
		},
		{
			name: "operator sem fornecedores, frota, usuarios e configuracoes",
			role: "operator",
			want: []Section{SectionDashboard, SectionFuel, SectionProducts, SectionReports},
		},
		{
			name: "viewer apenas dashboard e relatorios",
			role: "viewer",
			want: []Section{SectionDashboard, SectionReports},
		},
		{
			name: "papel desconhecido cai em viewer",
			role: "superuser",
			want: []Section{SectionDashboard, SectionReports},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := VisibleSections(tc.role)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("VisibleSections(%q) = %v, want %v", tc.role, got, tc.want)
			}
		})
	}
}

func TestVisibleSectionsSemIdentidade(t *testing.T) {
	if got := VisibleSections(""); got != nil {
		t.Fatalf("sem identidade deveria devolver nada, veio %v", got)
	}
	if got := VisibleSections("   "); got != nil {
		t.Fatalf("papel em branco deveria devolver nada, veio %v", got)
	}
}

func TestRoleFromStringFailClosed(t *testing.T) {
	cases := map[string]Role{
		"admin":     RoleAdmin,
		"ADMIN":     RoleAdmin,
		" operator": RoleOperator,
		"viewer":    RoleViewer,
		"superuser": RoleViewer,
		"":          RoleViewer,
		"root":      RoleViewer,
	}
	for input, want := range cases {
		if got := RoleFromString(input); got != want {
			t.Errorf("RoleFromString(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCapabilitiesMatrix(t *testing.T) {
	admin := CapabilitiesFor(RoleAdmin)
	if !admin.DashboardExport || !admin.UserManage || !admin.Settings || !admin.FleetEdit {
		t.Fatalf("admin deveria ter todas as permissões: %+v", admin)
	}

	operator := CapabilitiesFor(RoleOperator)
	if !operator.FuelProductEdit {
		t.Fatalf("operator deveria editar combustível/produtos")
	}
	if operator.FleetEdit || operator.UserManage || operator.Settings || operator.DashboardExport {
		t.Fatalf("operator com permissões além do esperado: %+v", operator)
	}

	viewer := CapabilitiesFor(RoleViewer)
	if viewer.FuelProductEdit || viewer.FleetEdit || viewer.UserManage || viewer.Settings {
		t.Fatalf("viewer deveria ser somente leitura: %+v", viewer)
	}
	if !viewer.DashboardView || !viewer.FuelProductView || !viewer.FleetView {
		t.Fatalf("viewer deveria manter leitura básica: %+v", viewer)
	}

	unknown := CapabilitiesFor(RoleFromString("gerente"))
	if !reflect.DeepEqual(unknown, viewer) {
		t.Fatalf("papel desconhecido deveria equivaler a viewer")
	}
}
