// Package flipbook plays frame-based sprite animations cut from a texture
// atlas, for [Ebitengine].
//
// An atlas is an XML document naming a texture and a list of animations.
// Each animation is an ordered list of frames; a frame is a region of the
// texture with a pivot, a display time in seconds, and optional named events
// and tagged shapes:
//
//	<SpriteSheet Version="1" Texture="hero.png">
//	  <Animation Name="walk">
//	    <Frame X="0" Y="0" Width="32" Height="32" PivotX="16" PivotY="30" Time="0.1">
//	      <Event Name="step"/>
//	      <Shape Type="Rectangle" Tag="hitbox" X="8" Y="4" Width="16" Height="26" Angle="0"/>
//	    </Frame>
//	  </Animation>
//	</SpriteSheet>
//
// # Quick start
//
// Parse an atlas with [Parse] (or [LoadFile] / [ParseCompressed]). Textures
// come from a [TextureSource]; [NewTextureCache] with [FSLoader] covers the
// common case of PNGs next to the atlas:
//
//	cache := flipbook.NewTextureCache(flipbook.FSLoader(assets))
//	sheet, err := flipbook.LoadFile(assets, "hero.xml", false, cache)
//	if err != nil {
//		return err
//	}
//	sheet.Select("walk")
//
// Then, once per tick:
//
//	sheet.Update(1.0 / float64(ebiten.TPS()))
//	for _, ev := range sheet.Events() {
//		// "step"
//	}
//
// And when drawing:
//
//	if intent, ok := sheet.DrawIntent(flipbook.Vec2{X: x, Y: y}, flipbook.FlipH()); ok {
//		intent.Draw(screen)
//	}
//
// [SpriteSheet.Events] and [SpriteSheet.Shapes] only report data on the tick
// the frame changed, so events fire once per frame entry.
//
// # Playback
//
// [SpriteSheet.Select] starts a named animation; options such as [StartAt],
// [WithSpeed], [Reversed], [Once] and [Interrupt] adjust it. Selecting the
// animation that is already playing is a no-op unless [Interrupt] is given.
// Non-looping animations stop on their last frame (first, when reversed).
// [TweenSpeed] eases the playback speed over time via [gween].
//
// # Assets
//
// A YAML [Manifest] lists several atlases; [LoadManifest] loads them into a
// [Library]. The flipbook-pack command validates a manifest and stores the
// atlases in a bbolt resource pack, read back with the pack subpackage.
// flipbook/ecs attaches sheets to [Donburi] entities and publishes frame
// events.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package flipbook
