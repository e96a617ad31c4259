package core

import (
	"fmt"
	"strings"

	"portable-deployer/internal/types"
)

// Fragment builders for the generated batch scripts. The installer and
// launcher templates carry {{TOKEN}} slots for each of these; a disabled
// feature substitutes the empty string.

// FeatureEchoLines returns the "included components" echo lines for the
// installer banner.
func FeatureEchoLines(tkinter, git, ffmpeg bool) (string, string, string) {
	var tkEcho, gitEcho, ffEcho string
	if tkinter {
		tkEcho = "echo   - Tkinter GUI framework\n"
	}
	if git {
		gitEcho = "echo   - Portable Git\n"
	}
	if ffmpeg {
		ffEcho = "echo   - Portable FFmpeg\n"
	}
	return tkEcho, gitEcho, ffEcho
}

// GitVars is the environment-variable block for the portable Git section.
func GitVars() string {
	return fmt.Sprintf(
		"set \"GIT_DIR=%%SCRIPT_DIR%%git_portable\"\n"+
			"set \"GIT_EXE=%%GIT_DIR%%\\cmd\\git.exe\"\n"+
			"set \"GIT_VERSION=%s\"\n"+
			"set \"GIT_URL=%s\"\n"+
			"set \"GIT_ZIP=%%SCRIPT_DIR%%git_portable.zip\"\n\n",
		types.GitVersion, types.GitURL,
	)
}

// FFmpegVars is the environment-variable block for the portable FFmpeg
// section.
func FFmpegVars() string {
	return fmt.Sprintf(
		"set \"FFMPEG_DIR=%%SCRIPT_DIR%%ffmpeg_portable\"\n"+
			"set \"FFMPEG_EXE=%%FFMPEG_DIR%%\\bin\\ffmpeg.exe\"\n"+
			"set \"FFMPEG_URL=%s\"\n"+
			"set \"FFMPEG_ZIP=%%SCRIPT_DIR%%ffmpeg_portable.zip\"\n\n",
		types.FFmpegURL,
	)
}

// PthExtraFragment renders extra search-path entries as additional
// single-quoted elements of the PowerShell array that writes the ._pth
// file on the target machine.
func PthExtraFragment(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(fmt.Sprintf(", '%s'", p))
	}
	return b.String()
}

// InstallPathSetup prepends the portable tool directories to PATH inside
// the installer script.
func InstallPathSetup(git, ffmpeg bool) string {
	var b strings.Builder
	if git {
		b.WriteString(
			"if exist \"%GIT_EXE%\" (\n" +
				"    set \"PATH=%GIT_DIR%\\cmd;%PATH%\"\n" +
				"    echo [OK] Portable Git added to PATH.\n" +
				")\n\n")
	}
	if ffmpeg {
		b.WriteString(
			"if exist \"%FFMPEG_EXE%\" (\n" +
				"    set \"PATH=%FFMPEG_DIR%\\bin;%PATH%\"\n" +
				"    echo [OK] Portable FFmpeg added to PATH.\n" +
				")\n\n")
	}
	return b.String()
}

// LauncherPathSetup is the launcher's quieter variant of the PATH block.
func LauncherPathSetup(git, ffmpeg bool) string {
	var b strings.Builder
	if git {
		b.WriteString(
			"if exist \"%SCRIPT_DIR%git_portable\\cmd\\git.exe\" (\n" +
				"    set \"PATH=%SCRIPT_DIR%git_portable\\cmd;%PATH%\"\n" +
				")\n")
	}
	if ffmpeg {
		b.WriteString(
			"if exist \"%SCRIPT_DIR%ffmpeg_portable\\bin\\ffmpeg.exe\" (\n" +
				"    set \"PATH=%SCRIPT_DIR%ffmpeg_portable\\bin;%PATH%\"\n" +
				")\n")
	}
	return b.String()
}

// TkinterSection reproduces the provisioner's toolkit setup in batch:
// probe the import, download tcltk.msi, administrative msiexec extract,
// copy the native libraries, replace the script package and tcl data
// directories wholesale, clean up, and re-probe.
func TkinterSection() string {
	return ":: ============================================\n" +
		":: Set up tkinter (needed for GUI)\n" +
		":: ============================================\n" +
		"\"%PYTHON_EXE%\" -c \"import _tkinter\" >nul 2>&1\n" +
		"if %errorlevel% neq 0 (\n" +
		"    echo [STEP] Setting up tkinter for GUI...\n" +
		"\n" +
		"    set \"TCLTK_MSI_URL=https://www.python.org/ftp/python/%PYTHON_VERSION%/amd64/tcltk.msi\"\n" +
		"    set \"TCLTK_MSI=%SCRIPT_DIR%_tcltk.msi\"\n" +
		"    set \"TCLTK_DIR=%SCRIPT_DIR%_tcltk_extract\"\n" +
		"\n" +
		"    echo   Downloading tcltk.msi...\n" +
		"    powershell -NoProfile -ExecutionPolicy Bypass -Command ^\n" +
		"        \"[Net.ServicePointManager]::SecurityProtocol = [Net.SecurityProtocolType]::Tls12;\" ^\n" +
		"        \"$ProgressPreference = 'SilentlyContinue';\" ^\n" +
		"        \"Invoke-WebRequest -Uri '!TCLTK_MSI_URL!' -OutFile '!TCLTK_MSI!'\"\n" +
		"\n" +
		"    if not exist \"!TCLTK_MSI!\" (\n" +
		"        echo WARNING: Failed to download tcltk.msi. GUI may not work.\n" +
		"        goto :tkinter_done\n" +
		"    )\n" +
		"\n" +
		"    echo   Extracting tkinter components...\n" +
		"    if exist \"!TCLTK_DIR!\" rmdir /S /Q \"!TCLTK_DIR!\" 2>nul\n" +
		"    powershell -NoProfile -Command \"Start-Process -FilePath 'msiexec.exe' -ArgumentList '/a','!TCLTK_MSI!','/qn','TARGETDIR=!TCLTK_DIR!' -Wait -NoNewWindow\"\n" +
		"\n" +
		"    :: Copy DLLs next to python.exe\n" +
		"    if exist \"!TCLTK_DIR!\\DLLs\\_tkinter.pyd\" (\n" +
		"        copy /Y \"!TCLTK_DIR!\\DLLs\\_tkinter.pyd\" \"%PYTHON_DIR%\\\" >nul 2>&1\n" +
		"        copy /Y \"!TCLTK_DIR!\\DLLs\\tcl86t.dll\" \"%PYTHON_DIR%\\\" >nul 2>&1\n" +
		"        copy /Y \"!TCLTK_DIR!\\DLLs\\tk86t.dll\" \"%PYTHON_DIR%\\\" >nul 2>&1\n" +
		"        if exist \"!TCLTK_DIR!\\DLLs\\zlib1.dll\" (\n" +
		"            copy /Y \"!TCLTK_DIR!\\DLLs\\zlib1.dll\" \"%PYTHON_DIR%\\\" >nul 2>&1\n" +
		"        )\n" +
		"    )\n" +
		"\n" +
		"    :: Copy Lib/tkinter/ Python package\n" +
		"    if exist \"!TCLTK_DIR!\\Lib\\tkinter\" (\n" +
		"        if exist \"%PYTHON_DIR%\\Lib\\tkinter\" rmdir /S /Q \"%PYTHON_DIR%\\Lib\\tkinter\" 2>nul\n" +
		"        xcopy /E /I /Y \"!TCLTK_DIR!\\Lib\\tkinter\" \"%PYTHON_DIR%\\Lib\\tkinter\" >nul 2>&1\n" +
		"    )\n" +
		"\n" +
		"    :: Copy tcl/ library\n" +
		"    if exist \"!TCLTK_DIR!\\tcl\" (\n" +
		"        if exist \"%PYTHON_DIR%\\tcl\" rmdir /S /Q \"%PYTHON_DIR%\\tcl\" 2>nul\n" +
		"        xcopy /E /I /Y \"!TCLTK_DIR!\\tcl\" \"%PYTHON_DIR%\\tcl\" >nul 2>&1\n" +
		"    )\n" +
		"\n" +
		"    :: Cleanup\n" +
		"    rmdir /S /Q \"!TCLTK_DIR!\" 2>nul\n" +
		"    del \"!TCLTK_MSI!\" 2>nul\n" +
		"\n" +
		"    :: Verify\n" +
		"    \"%PYTHON_EXE%\" -c \"import _tkinter\" >nul 2>&1\n" +
		"    if errorlevel 1 (\n" +
		"        echo WARNING: Failed to set up tkinter. GUI may not work.\n" +
		"    ) else (\n" +
		"        echo [OK] tkinter setup complete.\n" +
		"    )\n" +
		") else (\n" +
		"    echo [OK] tkinter already available.\n" +
		")\n" +
		":tkinter_done\n\n"
}

// GitSection downloads and unpacks the MinGit archive on the target
// machine, skipping the work when the executable is already present.
func GitSection() string {
	return ":: ============================================\n" +
		":: Download Portable Git\n" +
		":: ============================================\n" +
		"if exist \"%GIT_EXE%\" (\n" +
		"    echo [OK] Portable Git already installed.\n" +
		"    goto :git_done\n" +
		")\n" +
		"\n" +
		"echo [STEP] Downloading portable Git %GIT_VERSION%...\n" +
		"powershell -NoProfile -ExecutionPolicy Bypass -Command ^\n" +
		"    \"[Net.ServicePointManager]::SecurityProtocol = [Net.SecurityProtocolType]::Tls12;\" ^\n" +
		"    \"$ProgressPreference = 'SilentlyContinue';\" ^\n" +
		"    \"Invoke-WebRequest -Uri '%GIT_URL%' -OutFile '%GIT_ZIP%'\"\n" +
		"\n" +
		"if not exist \"%GIT_ZIP%\" (\n" +
		"    echo WARNING: Failed to download Git. Git features may not work.\n" +
		"    goto :git_done\n" +
		")\n" +
		"\n" +
		"echo [STEP] Extracting portable Git...\n" +
		"powershell -NoProfile -ExecutionPolicy Bypass -Command ^\n" +
		"    \"Expand-Archive -Path '%GIT_ZIP%' -DestinationPath '%GIT_DIR%' -Force\"\n" +
		"\n" +
		"del \"%GIT_ZIP%\" 2>nul\n" +
		":git_done\n\n"
}

// FFmpegSection downloads the FFmpeg essentials build and flattens the
// release archive's single inner directory into ffmpeg_portable\bin.
func FFmpegSection() string {
	return ":: ============================================\n" +
		":: Download Portable FFmpeg\n" +
		":: ============================================\n" +
		"if exist \"%FFMPEG_EXE%\" (\n" +
		"    echo [OK] Portable FFmpeg already installed.\n" +
		"    goto :ffmpeg_done\n" +
		")\n" +
		"\n" +
		"echo [STEP] Downloading portable FFmpeg...\n" +
		"powershell -NoProfile -ExecutionPolicy Bypass -Command ^\n" +
		"    \"[Net.ServicePointManager]::SecurityProtocol = [Net.SecurityProtocolType]::Tls12;\" ^\n" +
		"    \"$ProgressPreference = 'SilentlyContinue';\" ^\n" +
		"    \"Invoke-WebRequest -Uri '%FFMPEG_URL%' -OutFile '%FFMPEG_ZIP%'\"\n" +
		"\n" +
		"if not exist \"%FFMPEG_ZIP%\" (\n" +
		"    echo WARNING: Failed to download FFmpeg.\n" +
		"    goto :ffmpeg_done\n" +
		")\n" +
		"\n" +
		"echo [STEP] Extracting portable FFmpeg...\n" +
		"powershell -NoProfile -ExecutionPolicy Bypass -Command ^\n" +
		"    \"$tempDir = '%SCRIPT_DIR%_ffmpeg_temp';\" ^\n" +
		"    \"Expand-Archive -Path '%FFMPEG_ZIP%' -DestinationPath $tempDir -Force;\" ^\n" +
		"    \"$inner = Get-ChildItem $tempDir -Directory | Select-Object -First 1;\" ^\n" +
		"    \"if ($inner -and (Test-Path (Join-Path $inner.FullName 'bin'))) {\" ^\n" +
		"    \"  New-Item -Path '%FFMPEG_DIR%\\bin' -ItemType Directory -Force | Out-Null;\" ^\n" +
		"    \"  Copy-Item (Join-Path $inner.FullName 'bin\\*') '%FFMPEG_DIR%\\bin\\' -Force;\" ^\n" +
		"    \"  Write-Host '   Extracted FFmpeg to ffmpeg_portable\\bin\\'\" ^\n" +
		"    \"} else {\" ^\n" +
		"    \"  Write-Host 'WARNING: FFmpeg zip has unexpected structure'\" ^\n" +
		"    \"};\" ^\n" +
		"    \"Remove-Item $tempDir -Recurse -Force -ErrorAction SilentlyContinue\"\n" +
		"\n" +
		"del \"%FFMPEG_ZIP%\" 2>nul\n" +
		":ffmpeg_done\n\n"
}

// ConfigStubFragments builds the optional tool-path resolution blocks
// for the generated config.py.
func ConfigStubFragments(git, ffmpeg bool) (pathVars, resolveFuncs, resolvedVars string) {
	if git {
		pathVars += "GIT_PORTABLE_DIR = BASE_DIR / \"git_portable\"\n"
		resolveFuncs += "\ndef _resolve_git_path() -> str:\n" +
			"    \"\"\"Find the best available git executable.\"\"\"\n" +
			"    portable_git = GIT_PORTABLE_DIR / \"cmd\" / \"git.exe\"\n" +
			"    if portable_git.exists():\n" +
			"        return str(portable_git)\n" +
			"    return \"git\"\n\n"
		resolvedVars += "GIT_PATH = _resolve_git_path()\n"
	}
	if ffmpeg {
		pathVars += "FFMPEG_PORTABLE_DIR = BASE_DIR / \"ffmpeg_portable\"\n"
		resolveFuncs += "\ndef _resolve_ffmpeg_path() -> str:\n" +
			"    \"\"\"Find the best available ffmpeg executable.\"\"\"\n" +
			"    portable_ffmpeg = FFMPEG_PORTABLE_DIR / \"bin\" / \"ffmpeg.exe\"\n" +
			"    if portable_ffmpeg.exists():\n" +
			"        return str(portable_ffmpeg)\n" +
			"    return \"ffmpeg\"\n\n"
		resolvedVars += "FFMPEG_PATH = _resolve_ffmpeg_path()\n"
	}
	return pathVars, resolveFuncs, resolvedVars
}

// EntryPointStub is the created-once application skeleton: a Tk hello
// window when the toolkit is included, a console hello otherwise.
func EntryPointStub(projectName string, tkinter bool) string {
	if tkinter {
		return fmt.Sprintf("\"\"\"\n%s - Main Application\n"+
			"Generated by Portable Deployer\n\"\"\"\n\n"+
			"import tkinter as tk\n"+
			"from tkinter import ttk\n\n\n"+
			"def main():\n"+
			"    root = tk.Tk()\n"+
			"    root.title(%q)\n"+
			"    root.geometry(\"800x600\")\n\n"+
			"    label = ttk.Label(root, text=\"Welcome to %s!\",\n"+
			"                      font=(\"Segoe UI\", 16))\n"+
			"    label.pack(expand=True)\n\n"+
			"    root.mainloop()\n\n\n"+
			"if __name__ == \"__main__\":\n"+
			"    main()\n",
			projectName, projectName, projectName)
	}
	return fmt.Sprintf("\"\"\"\n%s - Main Application\n"+
		"Generated by Portable Deployer\n\"\"\"\n\n\n"+
		"def main():\n"+
		"    print(\"Welcome to %s!\")\n\n\n"+
		"if __name__ == \"__main__\":\n"+
		"    main()\n",
		projectName, projectName)
}
