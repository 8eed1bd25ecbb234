package theme

// Builtin returns a fresh copy of the stock palettes.
func Builtin() []Theme {
	return []Theme{
		{
			Slug:        "midnight-phantom",
			Name:        "Midnight Phantom",
			Description: "Default deep space purple",
			Colors: Colors{
				ClassShield: "#24245a",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#24245a",
				ClassText:   "#24245a",
				ClassSlogan: "#5c5981",
			},
		},
		{
			Slug:        "quantum-blue",
			Name:        "Quantum Blue",
			Description: "Deep space blue for tech community",
			Colors: Colors{
				ClassShield: "#0A1628",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#1E3A8A",
				ClassText:   "#0A1628",
				ClassSlogan: "#60A5FA",
			},
		},
		{
			Slug:        "forest-stealth",
			Name:        "Forest Stealth",
			Description: "Eco-tech, green computing",
			Colors: Colors{
				ClassShield: "#14532D",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#166534",
				ClassText:   "#14532D",
				ClassSlogan: "#4ADE80",
			},
		},
		{
			Slug:        "dark-matter",
			Name:        "Dark Matter",
			Description: "Near black minimalist design",
			Colors: Colors{
				ClassShield: "#0F0F0F",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#1A1A1A",
				ClassText:   "#0F0F0F",
				ClassSlogan: "#707070",
			},
		},
		{
			Slug:        "void-black",
			Name:        "Void Black",
			Description: "Absolute black monochrome",
			Colors: Colors{
				ClassShield: "#000000",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#000000",
				ClassText:   "#000000",
				ClassSlogan: "#666666",
			},
		},
		{
			Slug:        "crimson-phantom",
			Name:        "Crimson Phantom",
			Description: "Warning red for security alerts",
			Colors: Colors{
				ClassShield: "#1A0A0A",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#DC2626",
				ClassText:   "#1A0A0A",
				ClassSlogan: "#EF4444",
			},
		},
		{
			Slug:        "mystic-purple",
			Name:        "Mystic Purple",
			Description: "Deep cosmic purple energy",
			Colors: Colors{
				ClassShield: "#3B0764",
				ClassGhost:  "#ffffff",
				ClassEyes:   "#7C3AED",
				ClassText:   "#3B0764",
				ClassSlogan: "#A78BFA",
			},
		},
		{
			Slug:        "stellar-silver",
			Name:        "Stellar Silver",
			Description: "Light mode inverted design",
			Colors: Colors{
				ClassShield: "#E5E7EB",
				ClassGhost:  "#1F2937",
				ClassEyes:   "#E5E7EB",
				ClassText:   "#E5E7EB",
				ClassSlogan: "#9CA3AF",
			},
		},
	}
}
