// Package venv provides filesystem probes over uv-managed Python virtual
// environments: detection, size accounting, activity heuristics, and the
// deletion primitive. All probes are best-effort and never panic; I/O
// failures collapse into the documented default (false, or a partial sum).
package venv

import "runtime"

// Profile holds the platform-specific names that make up a virtualenv
// layout. It is resolved once at startup via DefaultProfile and threaded
// through the probes rather than branching on the OS inline.
type Profile struct {
	// BinDir, LibDir and IncludeDir are the three canonical subdirectories
	// of a virtualenv root ("bin"/"lib"/"include" on POSIX systems,
	// "Scripts"/"Lib"/"Include" on Windows).
	BinDir     string
	LibDir     string
	IncludeDir string

	// Python is the interpreter filename inside BinDir.
	Python string

	// ActivateScripts are the activation script filenames inside BinDir.
	ActivateScripts []string

	// Installers are the package-installer filenames inside BinDir.
	Installers []string
}

// CanonicalDirs returns the three structural subdirectory names.
func (p Profile) CanonicalDirs() [3]string {
	return [3]string{p.BinDir, p.LibDir, p.IncludeDir}
}

// ProfileFor returns the venv layout profile for the given GOOS value.
func ProfileFor(goos string) Profile {
	if goos == "windows" {
		return Profile{
			BinDir:          "Scripts",
			LibDir:          "Lib",
			IncludeDir:      "Include",
			Python:          "python.exe",
			ActivateScripts: []string{"activate.bat", "activate.ps1"},
			Installers:      []string{"pip.exe", "pip3.exe", "pip-script.py"},
		}
	}
	return Profile{
		BinDir:          "bin",
		LibDir:          "lib",
		IncludeDir:      "include",
		Python:          "python",
		ActivateScripts: []string{"activate", "activate.fish", "activate.csh"},
		Installers:      []string{"pip", "pip3"},
	}
}

// DefaultProfile returns the profile for the running platform.
func DefaultProfile() Profile {
	return ProfileFor(runtime.GOOS)
}
