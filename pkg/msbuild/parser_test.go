package msbuild

import (
	"testing"
)

const legacyProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <OutputType>Exe</OutputType>
  </PropertyGroup>
  <ItemGroup>
    <Compile Include="Program.cs" />
    <Compile Include="Util\Helpers.cs" />
    <Compile Include="**\*.generated.cs" />
    <Compile Include="$(IntermediateOutputPath)\Version.cs" />
  </ItemGroup>
  <ItemGroup>
    <ProjectReference Include="..\Lib\Lib.csproj" />
  </ItemGroup>
</Project>
`

const sdkProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
  <ItemGroup>
    <ProjectReference Include="..\Core\Core.csproj" />
    <ProjectReference Include="..\Data\Data.csproj" />
  </ItemGroup>
</Project>
`

func TestParse_LegacyProject(t *testing.T) {
	result, err := Parse([]byte(legacyProject))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if result.IsSDK() {
		t.Error("legacy project reported as SDK-style")
	}

	// Glob and property-expansion entries must be dropped
	wantSources := []string{"Program.cs", `Util\Helpers.cs`}
	if len(result.SourceFiles) != len(wantSources) {
		t.Fatalf("SourceFiles = %v, want %v", result.SourceFiles, wantSources)
	}
	for i, want := range wantSources {
		if result.SourceFiles[i] != want {
			t.Errorf("SourceFiles[%d] = %q, want %q", i, result.SourceFiles[i], want)
		}
	}

	if len(result.ProjectRefs) != 1 || result.ProjectRefs[0] != `..\Lib\Lib.csproj` {
		t.Errorf("ProjectRefs = %v, want the Lib reference", result.ProjectRefs)
	}
}

func TestParse_SDKProject(t *testing.T) {
	result, err := Parse([]byte(sdkProject))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !result.IsSDK() {
		t.Error("SDK project not recognized")
	}
	if !result.DefaultCompile {
		t.Error("SDK project without Compile items should report DefaultCompile")
	}
	if len(result.ProjectRefs) != 2 {
		t.Errorf("ProjectRefs = %v, want 2 references", result.ProjectRefs)
	}
	if result.ProjectRefs[0] != `..\Core\Core.csproj` || result.ProjectRefs[1] != `..\Data\Data.csproj` {
		t.Errorf("ProjectRefs out of declaration order: %v", result.ProjectRefs)
	}
}

func TestParse_SDKProjectWithExplicitItems(t *testing.T) {
	const project = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <Compile Include="Only.cs" />
  </ItemGroup>
</Project>
`
	result, err := Parse([]byte(project))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.DefaultCompile {
		t.Error("explicit Compile items should disable default globbing")
	}
	if len(result.SourceFiles) != 1 || result.SourceFiles[0] != "Only.cs" {
		t.Errorf("SourceFiles = %v, want [Only.cs]", result.SourceFiles)
	}
}

func TestParse_CompileItemReferencingProject(t *testing.T) {
	const project = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <Compile Include="Sub\Sub.csproj" />
    <Compile Include="Program.cs" />
  </ItemGroup>
</Project>
`
	result, err := Parse([]byte(project))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.ProjectRefs) != 1 || result.ProjectRefs[0] != `Sub\Sub.csproj` {
		t.Errorf("ProjectRefs = %v, want the Sub.csproj entry", result.ProjectRefs)
	}
	if len(result.SourceFiles) != 1 || result.SourceFiles[0] != "Program.cs" {
		t.Errorf("SourceFiles = %v, want [Program.cs]", result.SourceFiles)
	}
}

func TestParse_InvalidXML(t *testing.T) {
	if _, err := Parse([]byte("this is not xml at all")); err == nil {
		t.Error("Parse() of invalid XML should return an error")
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	if _, err := ParseFile("/does/not/exist.csproj"); err == nil {
		t.Error("ParseFile() on a missing file should return an error")
	}
}
