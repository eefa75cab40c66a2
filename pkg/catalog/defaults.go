package catalog

// defaultEntries mirrors the dashboard's built-in header menu.
var defaultEntries = []MenuEntry{
	{ID: 1, Title: "Campaign Groups", Icon: "header-menu/campaign-groups.svg", Href: "/main"},
	{ID: 2, Title: "Campaigns", Icon: "header-menu/campaigns.svg", Href: "/campaign", Duplicatable: true},
	{ID: 3, Title: "Unified Monitor", Icon: "header-menu/monitor.svg", Href: "/monitor"},
	{ID: 4, Title: "Overall Progress", Icon: "header-menu/status.svg", Href: "/status"},
	{ID: 5, Title: "Outbound Call Status", Icon: "header-menu/call.svg", Href: "/call", Duplicatable: true},
	{ID: 6, Title: "Channel Monitor", Icon: "header-menu/channel.svg", Href: "/channel"},
	{ID: 7, Title: "List Manager", Icon: "header-menu/list.svg", Href: "/list", Duplicatable: true},
	{ID: 8, Title: "Reserved Call Limits", Icon: "header-menu/reserve.svg", Href: "/reserve"},
	{ID: 9, Title: "Distribution Limits", Icon: "header-menu/distribute.svg", Href: "/distribute"},
	{ID: 10, Title: "System Settings", Icon: "header-menu/system.svg", Href: "/system"},
	{ID: 11, Title: "Operation Settings", Icon: "header-menu/operation.svg", Href: "/operation"},
	{ID: 12, Title: "Preferences", Icon: "header-menu/settings.svg", Href: "/settings"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return c
}
