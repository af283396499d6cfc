package config

const (
	defaultLibraryDir            = "~/roms"
	defaultOutputDir             = "~/.local/share/rascan/reports"
	defaultLogDir                = "~/.local/share/rascan/logs"
	defaultRABaseURL             = "https://retroachievements.org"
	defaultHasherBinaryPath      = "~/.local/share/rascan/tools/RAHasher"
	defaultHasherDownloadURL     = "https://github.com/RetroAchievements/RALibretro/releases/latest/download/RAHasher-x64-Linux.zip"
	defaultHasherDownloadTimeout = 300
	defaultHasherHashTimeout     = 120
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults. The platform
// table defaults to the systems RetroAchievements supports most commonly;
// users extend or replace it in their config file.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		RetroAchievements: RetroAchievements{
			BaseURL: defaultRABaseURL,
		},
		Hasher: Hasher{
			BinaryPath:      defaultHasherBinaryPath,
			DownloadURL:     defaultHasherDownloadURL,
			DownloadTimeout: defaultHasherDownloadTimeout,
			HashTimeout:     defaultHasherHashTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Platforms: DefaultPlatforms(),
	}
}

// DefaultPlatforms returns the built-in folder-name mapping table. Canonical
// names match the RetroAchievements console list exactly; aliases are the
// folder slugs common across frontends (EmulationStation, RetroPie, muOS).
func DefaultPlatforms() []Platform {
	return []Platform{
		{Name: "NES/Famicom", Aliases: []string{"nes", "famicom", "fc"}},
		{Name: "SNES/Super Famicom", Aliases: []string{"snes", "sfc", "superfamicom"}},
		{Name: "Nintendo 64", Aliases: []string{"n64"}},
		{Name: "Game Boy", Aliases: []string{"gb", "gameboy"}},
		{Name: "Game Boy Color", Aliases: []string{"gbc"}},
		{Name: "Game Boy Advance", Aliases: []string{"gba"}},
		{Name: "Nintendo DS", Aliases: []string{"nds", "ds"}},
		{Name: "Genesis/Mega Drive", Aliases: []string{"genesis", "megadrive", "md"}},
		{Name: "Master System", Aliases: []string{"sms", "mastersystem"}},
		{Name: "Game Gear", Aliases: []string{"gg", "gamegear"}},
		{Name: "Sega CD", Aliases: []string{"segacd", "megacd"}},
		{Name: "32X", Aliases: []string{"sega32x"}, Override: "32X"},
		{Name: "Saturn", Aliases: []string{"saturn"}},
		{Name: "Dreamcast", Aliases: []string{"dreamcast", "dc"}},
		{Name: "PlayStation", Aliases: []string{"psx", "ps1", "playstation"}},
		{Name: "PlayStation 2", Aliases: []string{"ps2"}},
		{Name: "PlayStation Portable", Aliases: []string{"psp"}},
		{Name: "Atari 2600", Aliases: []string{"atari2600", "a2600"}},
		{Name: "Atari 7800", Aliases: []string{"atari7800"}},
		{Name: "Atari Lynx", Aliases: []string{"lynx"}},
		{Name: "PC Engine/TurboGrafx-16", Aliases: []string{"pcengine", "tg16", "turbografx16"}},
		{Name: "Neo Geo Pocket", Aliases: []string{"ngp", "ngpc"}},
		{Name: "Arcade", Aliases: []string{"arcade", "mame", "fbneo"}},
	}
}
