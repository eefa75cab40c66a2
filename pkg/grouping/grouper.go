package grouping

import (
	"regexp"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/config"
)

const fallbackColor = "#7f8c8d"

type GroupedMenus struct {
	Name  string
	Color string
	Menus []catalog.MenuEntry
}

// GroupMenus assigns each menu to the first group whose pattern matches its
// title or href. Unmatched menus go to "Default" when that group exists.
// Empty groups are dropped; menus keep catalog order inside a group.
func GroupMenus(menus []catalog.MenuEntry, groups []config.Group) []GroupedMenus {
	type compiled struct {
		re  *regexp.Regexp
		out *GroupedMenus
	}

	result := make([]*GroupedMenus, 0, len(groups))
	matchers := make([]compiled, 0, len(groups))
	var defaultGroup *GroupedMenus

	for _, group := range groups {
		gm := &GroupedMenus{Name: group.Name, Color: group.Color}
		result = append(result, gm)
		if group.Name == "Default" {
			defaultGroup = gm
		}
		re, err := regexp.Compile(group.Pattern)
		if err != nil || group.Pattern == "" {
			continue
		}
		matchers = append(matchers, compiled{re: re, out: gm})
	}

	for _, menu := range menus {
		matched := false
		for _, m := range matchers {
			if m.re.MatchString(menu.Title) || (menu.Href != "" && m.re.MatchString(menu.Href)) {
				m.out.Menus = append(m.out.Menus, menu)
				matched = true
				break
			}
		}
		if !matched && defaultGroup != nil {
			defaultGroup.Menus = append(defaultGroup.Menus, menu)
		}
	}

	var nonEmpty []GroupedMenus
	for _, group := range result {
		if len(group.Menus) > 0 {
			nonEmpty = append(nonEmpty, *group)
		}
	}
	return nonEmpty
}

// GroupColorFor returns the color of the group containing menuID.
func GroupColorFor(menuID int, grouped []GroupedMenus) string {
	for _, group := range grouped {
		for _, m := range group.Menus {
			if m.ID == menuID {
				if group.Color == "" {
					return fallbackColor
				}
				return group.Color
			}
		}
	}
	return fallbackColor
}
