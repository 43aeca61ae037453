package upk

import (
	"strings"

	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/build"
	"github.com/goopsie/upkfile/pkg/stream"
	"github.com/goopsie/upkfile/pkg/upk/header"
)

// detectPlatform applies the folder-name heuristic (§4.D step 3): a file
// opened from a path containing one of these markers is biased toward the
// matching platform (console, or PC for a plain CookedPC folder) even
// before any header field is read.
func detectPlatform(pathHint string) build.Platform {
	lower := strings.ToLower(pathHint)
	switch {
	case strings.Contains(lower, "cookedpcconsole"), strings.Contains(lower, "cookedxenon"),
		strings.Contains(lower, "cookedps3"), strings.Contains(lower, "cookediphone"):
		return build.PlatformConsole
	case strings.Contains(lower, "cookedpc"):
		return build.PlatformPC
	default:
		return build.PlatformUndetermined
	}
}

// packLicenseeVersion / unpackLicenseeVersion convert between a UE1-3
// packed int32 (licensee<<16 | version) and its two fields (§4.D step 2).
func unpackLicenseeVersion(packed int32) (version int32, licensee int16) {
	return int32(uint32(packed) & 0xFFFF), int16(uint32(packed) >> 16)
}

func packLicenseeVersion(version int32, licensee int16) int32 {
	return int32(uint32(licensee)<<16 | uint32(version)&0xFFFF)
}

// ReadSummary executes the 23-step version-gated Summary parse (§4.D) and
// returns the Summary together with the Engine Branch it selects from the
// detected build. Step numbers in comments below refer to the spec sequence.
func ReadSummary(s *stream.Stream, opts LoadOptions) (*header.Summary, branch.Branch, error) {
	sum := &header.Summary{}

	// Step 1: signature tag and byte order.
	tag, err := s.U32("summary.tag")
	if err != nil {
		return nil, nil, err
	}
	order, ok := stream.DetectOrder(tag)
	if !ok {
		return nil, nil, &stream.ErrBadSignature{Got: tag}
	}
	s.SetOrder(order)
	sum.SignatureTag = tag
	sum.Order = order

	// Step 2: legacy version and the version/licensee/custom-version triad.
	legacy, err := s.I32("summary.legacyVersion")
	if err != nil {
		return nil, nil, err
	}
	if legacy < -7 {
		return nil, nil, &stream.ErrUnsupportedVersion{
			LegacyVersion: legacy,
			Reason:        "legacy version below supported range (-7..-1)",
		}
	}
	sum.LegacyVersion = legacy

	if sum.IsUE4() {
		if legacy != -4 {
			ue3, err := s.I32("summary.ue3Version")
			if err != nil {
				return nil, nil, err
			}
			sum.UE3Version = ue3
		}
		fileVersion, err := s.I32("summary.ue4FileVersion")
		if err != nil {
			return nil, nil, err
		}
		licenseeVersion, err := s.I32("summary.ue4LicenseeVersion")
		if err != nil {
			return nil, nil, err
		}
		sum.UE4FileVersion = fileVersion
		sum.UE4LicenseeVersion = licenseeVersion

		if fileVersion >= 138 && fileVersion < 142 {
			if _, err := s.Bytes("summary.cookedVersionPair", 8); err != nil {
				return nil, nil, err
			}
		}

		versions, err := readCustomVersionList(s, legacy)
		if err != nil {
			return nil, nil, err
		}
		sum.CustomVersions = versions
	} else {
		version, licensee := unpackLicenseeVersion(legacy)
		sum.Version = version
		sum.LicenseeVersion = licensee
	}

	// Step 3: platform heuristic, then build detection.
	platform := opts.Platform
	if platform == build.PlatformUndetermined {
		platform = detectPlatform(opts.PathHint)
	}
	sum.Platform = platform

	var resolved build.Build
	if sum.IsUE4() {
		resolved = build.DetectUE4(legacy, sum.UE4FileVersion, sum.UE4LicenseeVersion)
	} else {
		resolved = build.Detect(sum.Version, sum.LicenseeVersion, platform)
	}
	if opts.OverrideVersion != nil {
		resolved.OverrideVersion = opts.OverrideVersion
	}
	if opts.OverrideLicenseeVersion != nil {
		v := int32(*opts.OverrideLicenseeVersion)
		resolved.OverrideLicenseeVersion = &v
	}
	if resolved.OverrideVersion != nil {
		sum.Version = *resolved.OverrideVersion
	}
	if resolved.OverrideLicenseeVersion != nil {
		sum.LicenseeVersion = int16(*resolved.OverrideLicenseeVersion)
	}
	sum.Branch = resolved.Branch
	sum.Build = resolved

	// Step 4: branch setup.
	br := branch.New(resolved.Branch)

	// Step 5: header size (version-gated).
	if !sum.IsUE4() && sum.Version < header.ThresholdAddedTotalHeaderSize {
		sum.HeaderSize = -1 // unknown until computed on write; absent in this file.
	} else {
		hsz, err := s.I32("summary.headerSize")
		if err != nil {
			return nil, nil, err
		}
		sum.HeaderSize = hsz
	}

	// Step 6: folder name (version-gated).
	if sum.IsUE4() || sum.Version >= header.ThresholdAddedFolderName {
		folder, err := s.String("summary.folderName")
		if err != nil {
			return nil, nil, err
		}
		sum.FolderName = folder
	}

	// Step 7: package flags, then the fixed branch insertion point (HMS
	// extra i32, Huxley sentinel).
	packageFlags, err := s.U32("summary.packageFlags")
	if err != nil {
		return nil, nil, err
	}
	_ = packageFlags // read and discarded: neither Summary nor Package keeps the package flags, and WriteSummary writes 0 here.
	if err := br.PostDeserializeSummary(s, sum); err != nil {
		return nil, nil, err
	}

	// Step 8: name/export/import counts and offsets.
	if sum.NameCount, err = s.I32("summary.nameCount"); err != nil {
		return nil, nil, err
	}
	if sum.NameOffset, err = s.I32("summary.nameOffset"); err != nil {
		return nil, nil, err
	}
	if sum.IsUE4() && sum.UE4FileVersion >= header.ThresholdUE4GatherableTextData {
		if sum.GatherableTextDataCount, err = s.I32("summary.gatherableTextDataCount"); err != nil {
			return nil, nil, err
		}
		if sum.GatherableTextDataOffset, err = s.I32("summary.gatherableTextDataOffset"); err != nil {
			return nil, nil, err
		}
	}
	if sum.ExportCount, err = s.I32("summary.exportCount"); err != nil {
		return nil, nil, err
	}
	if sum.ExportOffset, err = s.I32("summary.exportOffset"); err != nil {
		return nil, nil, err
	}
	if sum.ImportCount, err = s.I32("summary.importCount"); err != nil {
		return nil, nil, err
	}
	if sum.ImportOffset, err = s.I32("summary.importOffset"); err != nil {
		return nil, nil, err
	}

	// Step 9/10: Heritage (deprecated) vs. Depends, mutually exclusive by
	// version. A Heritage-era file (pre-Generations) ends here: everything
	// from GUID onward postdates Heritage, so there is nothing left to read.
	if !sum.IsUE4() && sum.Version < header.ThresholdHeritageTableDeprecated {
		if sum.HeritageCount, err = s.I32("summary.heritageCount"); err != nil {
			return nil, nil, err
		}
		if sum.HeritageOffset, err = s.I32("summary.heritageOffset"); err != nil {
			return nil, nil, err
		}
		return sum, br, nil
	}
	if sum.IsUE4() || sum.Version >= header.ThresholdAddedDependsTable {
		if sum.DependsOffset, err = s.I32("summary.dependsOffset"); err != nil {
			return nil, nil, err
		}
	}

	// Step 10: UE4-only string-asset-references and searchable-names.
	if sum.IsUE4() {
		if sum.StringAssetReferencesCount, err = s.I32("summary.stringAssetReferencesCount"); err != nil {
			return nil, nil, err
		}
		if sum.StringAssetReferencesOffset, err = s.I32("summary.stringAssetReferencesOffset"); err != nil {
			return nil, nil, err
		}
		if sum.UE4FileVersion >= header.ThresholdUE4LocalizationID {
			if sum.SearchableNamesOffset, err = s.I32("summary.searchableNamesOffset"); err != nil {
				return nil, nil, err
			}
		}
	}

	// Step 11: import/export GUID lists (version-gated, UE3 only).
	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedImportExportGUIDs {
		if sum.ImportGUIDsCount, err = s.I32("summary.importGuidsCount"); err != nil {
			return nil, nil, err
		}
		if sum.ExportGUIDsCount, err = s.I32("summary.exportGuidsCount"); err != nil {
			return nil, nil, err
		}
		if sum.ImportExportGUIDsOffset, err = s.I32("summary.importExportGuidsOffset"); err != nil {
			return nil, nil, err
		}
	}

	// Step 12: thumbnail table offset.
	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedThumbnailTable {
		if sum.ThumbnailTableOffset, err = s.I32("summary.thumbnailTableOffset"); err != nil {
			return nil, nil, err
		}
	}

	// Step 13: package GUID.
	g, err := s.GUID("summary.guid")
	if err != nil {
		return nil, nil, err
	}
	sum.GUID = g

	// Step 14: generation list. Tera's quirk (overwriting NameCount from
	// the last generation entry) is applied once the list is fully read.
	genCount, err := s.I32("summary.generationCount")
	if err != nil {
		return nil, nil, err
	}
	sum.Generations = make([]header.Generation, genCount)
	for i := range sum.Generations {
		exportCount, err := s.I32("summary.generation.exportCount")
		if err != nil {
			return nil, nil, err
		}
		nameCount, err := s.I32("summary.generation.nameCount")
		if err != nil {
			return nil, nil, err
		}
		var netObjectCount int32
		if sum.IsUE4() {
			netObjectCount = 0
		} else {
			netObjectCount, err = s.I32("summary.generation.netObjectCount")
			if err != nil {
				return nil, nil, err
			}
		}
		sum.Generations[i] = header.Generation{ExportCount: exportCount, NameCount: nameCount, NetObjectCount: netObjectCount}
	}
	if dflt, ok := br.(*branch.DefaultBranch); ok {
		dflt.ApplyTeraGenerationQuirk(sum)
	}

	// Step 15: engine/cooker version.
	if sum.IsUE4() {
		ev, err := readEngineVersion4(s)
		if err != nil {
			return nil, nil, err
		}
		sum.EngineVersion4 = ev
		cev, err := readEngineVersion4(s)
		if err != nil {
			return nil, nil, err
		}
		sum.CompatibleEngineVersion4 = cev
	} else {
		ev, err := s.I32("summary.engineVersion")
		if err != nil {
			return nil, nil, err
		}
		sum.EngineVersion = ev
		cv, err := s.I32("summary.cookerVersion")
		if err != nil {
			return nil, nil, err
		}
		sum.CookerVersion = cv
	}

	// Step 16: compression flags and the compressed-chunk list.
	if !sum.IsUE4() && sum.Version >= header.ThresholdCompressionAdded || sum.IsUE4() {
		flags, err := s.U32("summary.compressionFlags")
		if err != nil {
			return nil, nil, err
		}
		sum.CompressionFlags = flags
		chunkCount, err := s.I32("summary.compressedChunkCount")
		if err != nil {
			return nil, nil, err
		}
		sum.CompressedChunks = make([]header.CompressedChunk, chunkCount)
		for i := range sum.CompressedChunks {
			var c header.CompressedChunk
			if c.UncompressedOffset, err = s.I32("summary.chunk.uncompressedOffset"); err != nil {
				return nil, nil, err
			}
			if c.UncompressedSize, err = s.I32("summary.chunk.uncompressedSize"); err != nil {
				return nil, nil, err
			}
			if c.CompressedOffset, err = s.I32("summary.chunk.compressedOffset"); err != nil {
				return nil, nil, err
			}
			if c.CompressedSize, err = s.I32("summary.chunk.compressedSize"); err != nil {
				return nil, nil, err
			}
			sum.CompressedChunks[i] = c
		}
	}

	// Step 17: package source.
	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedPackageSource || sum.IsUE4() {
		ps, err := s.U32("summary.packageSource")
		if err != nil {
			return nil, nil, err
		}
		sum.PackageSource = ps
	}

	// Step 18: additional-packages-to-cook.
	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedAdditionalPkgsToCook || sum.IsUE4() {
		count, err := s.I32("summary.additionalPackagesToCookCount")
		if err != nil {
			return nil, nil, err
		}
		sum.AdditionalPackagesToCook = make([]string, count)
		for i := range sum.AdditionalPackagesToCook {
			name, err := s.String("summary.additionalPackageToCook")
			if err != nil {
				return nil, nil, err
			}
			sum.AdditionalPackagesToCook[i] = name
		}
	}

	// Step 19: DCUO's unannounced padding field and retroactive offset
	// shift, read right after AdditionalPackagesToCook since that is
	// where DCUO inserts it.
	if dcuo, ok := br.(*branch.DCUOBranch); ok {
		if err := dcuo.ReadOffsetPadding(s); err != nil {
			return nil, nil, err
		}
		dcuo.ApplyOffsetRetrofit(sum)
	}

	// Step 20: texture allocations (UE3 only, version-gated).
	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedTextureAllocations {
		n, err := s.I32("summary.textureAllocationsSize")
		if err != nil {
			return nil, nil, err
		}
		if n > 0 {
			b, err := s.Bytes("summary.textureAllocations", int(n))
			if err != nil {
				return nil, nil, err
			}
			sum.TextureAllocations = b
		}
	}

	// Step 21: UE4-only tail fields: asset-registry-data offset,
	// bulk-data-start offset, world-tile-info offset, chunk IDs,
	// preload-dependency count/offset. Read directly; UE4Branch has no
	// hook insertions here per its current feature set.
	if sum.IsUE4() {
		if sum.AssetRegistryDataOffset, err = s.I32("summary.assetRegistryDataOffset"); err != nil {
			return nil, nil, err
		}
		if sum.BulkDataStartOffset, err = s.I64("summary.bulkDataStartOffset"); err != nil {
			return nil, nil, err
		}
		if sum.WorldTileInfoDataOffset, err = s.I32("summary.worldTileInfoDataOffset"); err != nil {
			return nil, nil, err
		}
		chunkCount, err := s.I32("summary.chunkIdCount")
		if err != nil {
			return nil, nil, err
		}
		sum.ChunkIDs = make([]int32, chunkCount)
		for i := range sum.ChunkIDs {
			if sum.ChunkIDs[i], err = s.I32("summary.chunkId"); err != nil {
				return nil, nil, err
			}
		}
		if sum.PreloadDependencyCount, err = s.I32("summary.preloadDependencyCount"); err != nil {
			return nil, nil, err
		}
		if sum.PreloadDependencyOffset, err = s.I32("summary.preloadDependencyOffset"); err != nil {
			return nil, nil, err
		}
	}

	// Step 22/23: final Summary invariant check.
	if sum.HeaderSize > 0 {
		if err := sum.Validate(); err != nil {
			return nil, nil, err
		}
	}

	return sum, br, nil
}

// WriteSummary writes sum back out in the same version-gated shape it was
// read in, invoking the same branch hooks in the same order.
func WriteSummary(s *stream.Stream, sum *header.Summary, br branch.Branch) error {
	if err := s.WriteU32(sum.SignatureTag); err != nil {
		return err
	}
	if err := s.WriteI32(sum.LegacyVersion); err != nil {
		return err
	}

	if sum.IsUE4() {
		if sum.LegacyVersion != -4 {
			if err := s.WriteI32(sum.UE3Version); err != nil {
				return err
			}
		}
		if err := s.WriteI32(sum.UE4FileVersion); err != nil {
			return err
		}
		if err := s.WriteI32(sum.UE4LicenseeVersion); err != nil {
			return err
		}
		if sum.UE4FileVersion >= 138 && sum.UE4FileVersion < 142 {
			if err := s.WriteBytes(make([]byte, 8)); err != nil {
				return err
			}
		}
		if err := writeCustomVersionList(s, sum.LegacyVersion, sum.CustomVersions); err != nil {
			return err
		}
	}

	if !sum.IsUE4() && sum.Version < header.ThresholdAddedTotalHeaderSize {
		// nothing written: absent in this version.
	} else {
		if err := s.WriteI32(sum.HeaderSize); err != nil {
			return err
		}
	}

	if sum.IsUE4() || sum.Version >= header.ThresholdAddedFolderName {
		if err := s.WriteString(sum.FolderName); err != nil {
			return err
		}
	}

	if err := s.WriteU32(0); err != nil { // package flags: ReadSummary does not keep them, so 0 is written.
		return err
	}
	if err := br.PostSerializeSummary(s, sum); err != nil {
		return err
	}

	if err := s.WriteI32(sum.NameCount); err != nil {
		return err
	}
	if err := s.WriteI32(sum.NameOffset); err != nil {
		return err
	}
	if sum.IsUE4() && sum.UE4FileVersion >= header.ThresholdUE4GatherableTextData {
		if err := s.WriteI32(sum.GatherableTextDataCount); err != nil {
			return err
		}
		if err := s.WriteI32(sum.GatherableTextDataOffset); err != nil {
			return err
		}
	}
	if err := s.WriteI32(sum.ExportCount); err != nil {
		return err
	}
	if err := s.WriteI32(sum.ExportOffset); err != nil {
		return err
	}
	if err := s.WriteI32(sum.ImportCount); err != nil {
		return err
	}
	if err := s.WriteI32(sum.ImportOffset); err != nil {
		return err
	}

	if !sum.IsUE4() && sum.Version < header.ThresholdHeritageTableDeprecated {
		if err := s.WriteI32(sum.HeritageCount); err != nil {
			return err
		}
		if err := s.WriteI32(sum.HeritageOffset); err != nil {
			return err
		}
		return nil
	}
	if sum.IsUE4() || sum.Version >= header.ThresholdAddedDependsTable {
		if err := s.WriteI32(sum.DependsOffset); err != nil {
			return err
		}
	}

	if sum.IsUE4() {
		if err := s.WriteI32(sum.StringAssetReferencesCount); err != nil {
			return err
		}
		if err := s.WriteI32(sum.StringAssetReferencesOffset); err != nil {
			return err
		}
		if sum.UE4FileVersion >= header.ThresholdUE4LocalizationID {
			if err := s.WriteI32(sum.SearchableNamesOffset); err != nil {
				return err
			}
		}
	}

	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedImportExportGUIDs {
		if err := s.WriteI32(sum.ImportGUIDsCount); err != nil {
			return err
		}
		if err := s.WriteI32(sum.ExportGUIDsCount); err != nil {
			return err
		}
		if err := s.WriteI32(sum.ImportExportGUIDsOffset); err != nil {
			return err
		}
	}

	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedThumbnailTable {
		if err := s.WriteI32(sum.ThumbnailTableOffset); err != nil {
			return err
		}
	}

	if err := s.WriteGUID(sum.GUID); err != nil {
		return err
	}

	if err := s.WriteI32(int32(len(sum.Generations))); err != nil {
		return err
	}
	for _, gen := range sum.Generations {
		if err := s.WriteI32(gen.ExportCount); err != nil {
			return err
		}
		if err := s.WriteI32(gen.NameCount); err != nil {
			return err
		}
		if !sum.IsUE4() {
			if err := s.WriteI32(gen.NetObjectCount); err != nil {
				return err
			}
		}
	}

	if sum.IsUE4() {
		if err := writeEngineVersion4(s, sum.EngineVersion4); err != nil {
			return err
		}
		if err := writeEngineVersion4(s, sum.CompatibleEngineVersion4); err != nil {
			return err
		}
	} else {
		if err := s.WriteI32(sum.EngineVersion); err != nil {
			return err
		}
		if err := s.WriteI32(sum.CookerVersion); err != nil {
			return err
		}
	}

	if !sum.IsUE4() && sum.Version >= header.ThresholdCompressionAdded || sum.IsUE4() {
		if err := s.WriteU32(sum.CompressionFlags); err != nil {
			return err
		}
		if err := s.WriteI32(int32(len(sum.CompressedChunks))); err != nil {
			return err
		}
		for _, c := range sum.CompressedChunks {
			if err := s.WriteI32(c.UncompressedOffset); err != nil {
				return err
			}
			if err := s.WriteI32(c.UncompressedSize); err != nil {
				return err
			}
			if err := s.WriteI32(c.CompressedOffset); err != nil {
				return err
			}
			if err := s.WriteI32(c.CompressedSize); err != nil {
				return err
			}
		}
	}

	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedPackageSource || sum.IsUE4() {
		if err := s.WriteU32(sum.PackageSource); err != nil {
			return err
		}
	}

	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedAdditionalPkgsToCook || sum.IsUE4() {
		if err := s.WriteI32(int32(len(sum.AdditionalPackagesToCook))); err != nil {
			return err
		}
		for _, name := range sum.AdditionalPackagesToCook {
			if err := s.WriteString(name); err != nil {
				return err
			}
		}
	}

	// Step 19: DCUO's unannounced padding field, written right after
	// AdditionalPackagesToCook to match ReadOffsetPadding's insertion
	// point.
	if dcuo, ok := br.(*branch.DCUOBranch); ok {
		if err := dcuo.WriteOffsetPadding(s); err != nil {
			return err
		}
	}

	if !sum.IsUE4() && sum.Version >= header.ThresholdAddedTextureAllocations {
		if err := s.WriteI32(int32(len(sum.TextureAllocations))); err != nil {
			return err
		}
		if len(sum.TextureAllocations) > 0 {
			if err := s.WriteBytes(sum.TextureAllocations); err != nil {
				return err
			}
		}
	}

	if sum.IsUE4() {
		if err := s.WriteI32(sum.AssetRegistryDataOffset); err != nil {
			return err
		}
		if err := s.WriteI64(sum.BulkDataStartOffset); err != nil {
			return err
		}
		if err := s.WriteI32(sum.WorldTileInfoDataOffset); err != nil {
			return err
		}
		if err := s.WriteI32(int32(len(sum.ChunkIDs))); err != nil {
			return err
		}
		for _, id := range sum.ChunkIDs {
			if err := s.WriteI32(id); err != nil {
				return err
			}
		}
		if err := s.WriteI32(sum.PreloadDependencyCount); err != nil {
			return err
		}
		if err := s.WriteI32(sum.PreloadDependencyOffset); err != nil {
			return err
		}
	}

	return nil
}

// readCustomVersionList reads the UE4 custom-version list, whose shape
// depends on the legacy version (§4.D step 2):
//   - legacy == -2: the oldest enum-tag shape. There is no per-entry GUID
//     in this format; the tag is stored in the low word of GUID[0] so a
//     single CustomVersion type still carries it.
//   - legacy in [-5,-3] or legacy <= -6: {GUID, Version} pairs, 20 bytes
//     each (matches the literal seed scenario at legacy=-6).
func readCustomVersionList(s *stream.Stream, legacy int32) ([]header.CustomVersion, error) {
	count, err := s.I32("summary.customVersionCount")
	if err != nil {
		return nil, err
	}
	out := make([]header.CustomVersion, count)
	for i := range out {
		if legacy == -2 {
			tag, err := s.I32("summary.customVersion.tag")
			if err != nil {
				return nil, err
			}
			version, err := s.I32("summary.customVersion.version")
			if err != nil {
				return nil, err
			}
			out[i] = header.CustomVersion{GUID: stream.GUID{uint32(tag), 0, 0, 0}, Version: version}
			continue
		}
		g, err := s.GUID("summary.customVersion.guid")
		if err != nil {
			return nil, err
		}
		version, err := s.I32("summary.customVersion.version")
		if err != nil {
			return nil, err
		}
		out[i] = header.CustomVersion{GUID: g, Version: version}
	}
	return out, nil
}

func writeCustomVersionList(s *stream.Stream, legacy int32, versions []header.CustomVersion) error {
	if err := s.WriteI32(int32(len(versions))); err != nil {
		return err
	}
	for _, v := range versions {
		if legacy == -2 {
			if err := s.WriteI32(int32(v.GUID[0])); err != nil {
				return err
			}
			if err := s.WriteI32(v.Version); err != nil {
				return err
			}
			continue
		}
		if err := s.WriteGUID(v.GUID); err != nil {
			return err
		}
		if err := s.WriteI32(v.Version); err != nil {
			return err
		}
	}
	return nil
}

func readEngineVersion4(s *stream.Stream) (*header.EngineVersion4, error) {
	major, err := s.U16("summary.engineVersion4.major")
	if err != nil {
		return nil, err
	}
	minor, err := s.U16("summary.engineVersion4.minor")
	if err != nil {
		return nil, err
	}
	patch, err := s.U16("summary.engineVersion4.patch")
	if err != nil {
		return nil, err
	}
	changelist, err := s.U32("summary.engineVersion4.changelist")
	if err != nil {
		return nil, err
	}
	branchName, err := s.String("summary.engineVersion4.branch")
	if err != nil {
		return nil, err
	}
	return &header.EngineVersion4{Major: major, Minor: minor, Patch: patch, Changelist: changelist, Branch: branchName}, nil
}

func writeEngineVersion4(s *stream.Stream, ev *header.EngineVersion4) error {
	if ev == nil {
		ev = &header.EngineVersion4{}
	}
	if err := s.WriteU16(ev.Major); err != nil {
		return err
	}
	if err := s.WriteU16(ev.Minor); err != nil {
		return err
	}
	if err := s.WriteU16(ev.Patch); err != nil {
		return err
	}
	if err := s.WriteU32(ev.Changelist); err != nil {
		return err
	}
	return s.WriteString(ev.Branch)
}
